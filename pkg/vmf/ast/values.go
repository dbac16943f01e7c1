package ast

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Typed fields decode best-effort: a value that does not parse leaves the
// field at its zero value, and the raw text stays available in property
// storage either way.

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// vec3 decodes a whitespace-separated float triple such as "0 -64 128".
func vec3(s string) mgl32.Vec3 {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return mgl32.Vec3{}
	}
	var v mgl32.Vec3
	for i, f := range fields {
		parsed, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return mgl32.Vec3{}
		}
		v[i] = float32(parsed)
	}
	return v
}
