package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// defaultGitTimeout bounds clone and pull operations.
const defaultGitTimeout = 60 * time.Second

// GitConfig configures a git-backed map source.
type GitConfig struct {
	// URL is the repository to clone. Required.
	URL string

	// Ref pins the worktree to a branch name or full commit SHA. Empty
	// means the remote's default branch.
	Ref string

	// LocalPath is where the repository is cloned. Empty means a directory
	// under the system temp dir.
	LocalPath string

	// Depth enables shallow clones when positive. Ignored for SHA-pinned
	// refs, which need history to resolve.
	Depth int

	// Timeout bounds clone and pull operations. Zero means a minute.
	Timeout time.Duration

	// Auth is the transport credential, nil for anonymous access.
	Auth transport.AuthMethod
}

// GitSource serves maps from a repository worktree. The first Fetch clones
// the repository; later Fetches reuse the clone.
type GitSource struct {
	config GitConfig

	mu   sync.Mutex
	repo *gogit.Repository
}

// NewGitSource creates a git-backed source. The repository is not touched
// until Sync or the first Fetch.
func NewGitSource(cfg GitConfig) (*GitSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("git source: repository URL is empty")
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "strata-maps")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGitTimeout
	}
	return &GitSource{config: cfg}, nil
}

// Sync clones the repository, or refreshes an existing clone. Branch refs
// pull; SHA-pinned refs are immutable and only check out.
func (s *GitSource) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncLocked(ctx)
}

func (s *GitSource) syncLocked(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if s.repo == nil {
		repo, err := s.openOrClone(ctx)
		if err != nil {
			return err
		}
		s.repo = repo
	} else if !isCommitSHA(s.config.Ref) {
		if err := s.pull(ctx); err != nil {
			return err
		}
	}

	return s.checkoutRef()
}

// openOrClone reuses a clone at LocalPath when one exists.
func (s *GitSource) openOrClone(ctx context.Context) (*gogit.Repository, error) {
	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return nil, fmt.Errorf("opening existing clone: %w", err)
		}
		return repo, nil
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating clone directory: %w", err)
	}

	opts := &gogit.CloneOptions{
		URL:  s.config.URL,
		Auth: s.config.Auth,
	}
	// SHA-pinned refs keep full history so the commit stays reachable.
	if !isCommitSHA(s.config.Ref) {
		if s.config.Ref != "" {
			opts.ReferenceName = plumbing.NewBranchReferenceName(s.config.Ref)
		}
		opts.SingleBranch = s.config.Depth > 0
		opts.Depth = s.config.Depth
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, opts)
	if err != nil {
		return nil, fmt.Errorf("cloning %s: %w", s.config.URL, err)
	}
	return repo, nil
}

func (s *GitSource) pull(ctx context.Context) error {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{
		RemoteName: "origin",
		Auth:       s.config.Auth,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("pulling %s: %w", s.config.URL, err)
	}
	return nil
}

func (s *GitSource) checkoutRef() error {
	ref := s.config.Ref
	if ref == "" {
		return nil
	}

	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	opts := &gogit.CheckoutOptions{}
	if isCommitSHA(ref) {
		opts.Hash = plumbing.NewHash(ref)
	} else {
		opts.Branch = plumbing.NewBranchReferenceName(ref)
	}
	if err := worktree.Checkout(opts); err != nil {
		return fmt.Errorf("checking out %s: %w", ref, err)
	}
	return nil
}

// Fetch returns the local path of name inside the worktree, syncing the
// clone first when needed.
func (s *GitSource) Fetch(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("map name is empty")
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("map name %q escapes the source root", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		if err := s.syncLocked(ctx); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.config.LocalPath, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("map %q not in repository worktree: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("map %q is a directory", name)
	}
	return path, nil
}

// Head returns the SHA of the checked-out commit.
func (s *GitSource) Head() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return "", fmt.Errorf("repository not synced")
	}
	ref, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Describe returns "url@ref", or just the url for default-branch sources.
func (s *GitSource) Describe() string {
	if s.config.Ref == "" {
		return s.config.URL
	}
	return s.config.URL + "@" + s.config.Ref
}

// isCommitSHA reports whether ref looks like a full 40-hex commit id.
func isCommitSHA(ref string) bool {
	if len(ref) != 40 {
		return false
	}
	for _, c := range ref {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
