//go:build !darwin && !linux

package doctor

const permissionHint = "Input synthesis is not available on this platform."
