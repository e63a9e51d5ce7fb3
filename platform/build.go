package platform

import (
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sys/cpu"
)

// BuildConfig describes the platform a binary runs on. It replaces
// compile-time detection: code that needs platform facts receives a
// BuildConfig instead of consulting the environment itself.
type BuildConfig struct {
	OS           string   `json:"os"`
	Arch         string   `json:"arch"`
	Compiler     string   `json:"compiler"`
	GoVersion    string   `json:"go_version"`
	LittleEndian bool     `json:"little_endian"`
	PointerSize  int      `json:"pointer_size"`
	Features     []string `json:"features,omitempty"`
}

// Detect returns the BuildConfig of the running process.
func Detect() BuildConfig {
	return BuildConfig{
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		Compiler:     runtime.Compiler,
		GoVersion:    runtime.Version(),
		LittleEndian: HostIsLittleEndian(),
		PointerSize:  strconv.IntSize / 8,
		Features:     cpuFeatures(),
	}
}

// String returns a short one-line description of the configuration.
func (c BuildConfig) String() string {
	order := "big-endian"
	if c.LittleEndian {
		order = "little-endian"
	}
	return fmt.Sprintf("%s/%s (%s, %s, %d-bit)", c.OS, c.Arch, c.Compiler, order, c.PointerSize*8)
}

// ConsistentWithArch reports whether the probed byte order agrees with the
// byte order x/sys/cpu expects for the target architecture. A mismatch means
// the binary was cross-compiled for a different target than it runs on.
func (c BuildConfig) ConsistentWithArch() bool {
	return c.LittleEndian != cpu.IsBigEndian
}

func cpuFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE41, "sse4.1")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasBMI2, "bmi2")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasATOMICS, "atomics")
		add(cpu.ARM64.HasCRC32, "crc32")
	}
	return features
}
