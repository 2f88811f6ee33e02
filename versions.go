package mcschematic

import (
	"fmt"
	"strconv"
	"strings"
)

// DataVersion values of Minecraft Java Edition releases. Any other value may
// be passed to Save as well; the library does not interpret it.
const (
	JE_1_9     int32 = 169
	JE_1_9_1   int32 = 175
	JE_1_9_2   int32 = 176
	JE_1_9_3   int32 = 183
	JE_1_9_4   int32 = 184
	JE_1_10    int32 = 510
	JE_1_10_1  int32 = 511
	JE_1_10_2  int32 = 512
	JE_1_11    int32 = 819
	JE_1_11_1  int32 = 921
	JE_1_11_2  int32 = 922
	JE_1_12    int32 = 1139
	JE_1_12_1  int32 = 1241
	JE_1_12_2  int32 = 1343
	JE_1_13    int32 = 1519
	JE_1_13_1  int32 = 1628
	JE_1_13_2  int32 = 1631
	JE_1_14    int32 = 1952
	JE_1_14_4  int32 = 1976
	JE_1_15    int32 = 2225
	JE_1_15_2  int32 = 2230
	JE_1_16    int32 = 2566
	JE_1_16_5  int32 = 2586
	JE_1_17    int32 = 2724
	JE_1_17_1  int32 = 2730
	JE_1_18    int32 = 2860
	JE_1_18_2  int32 = 2975
	JE_1_19    int32 = 3105
	JE_1_19_1  int32 = 3117
	JE_1_19_2  int32 = 3120
	JE_1_19_3  int32 = 3218
	JE_1_19_4  int32 = 3337
	JE_1_20    int32 = 3463
	JE_1_20_1  int32 = 3465
	JE_1_20_2  int32 = 3578
	JE_1_20_4  int32 = 3700
	JE_1_20_5  int32 = 3837
	JE_1_20_6  int32 = 3839
	JE_1_21    int32 = 3953
	JE_1_21_1  int32 = 3955
	JE_1_21_2  int32 = 4080
	JE_1_21_3  int32 = 4082
	JE_1_21_4  int32 = 4189
	JE_1_21_5  int32 = 4325
	JE_1_21_6  int32 = 4435
	JE_1_21_7  int32 = 4438
	JE_1_21_8  int32 = 4440
	JE_1_21_9  int32 = 4554
	JE_1_21_10 int32 = 4556
	JE_1_21_11 int32 = 4665
)

// Release pairs a Java Edition release name with its DataVersion.
type Release struct {
	Name        string
	DataVersion int32
}

// releases is sorted by DataVersion, newest first.
var releases = []Release{
	{"1.21.11", JE_1_21_11},
	{"1.21.10", JE_1_21_10},
	{"1.21.9", JE_1_21_9},
	{"1.21.8", JE_1_21_8},
	{"1.21.7", JE_1_21_7},
	{"1.21.6", JE_1_21_6},
	{"1.21.5", JE_1_21_5},
	{"1.21.4", JE_1_21_4},
	{"1.21.3", JE_1_21_3},
	{"1.21.2", JE_1_21_2},
	{"1.21.1", JE_1_21_1},
	{"1.21", JE_1_21},
	{"1.20.6", JE_1_20_6},
	{"1.20.5", JE_1_20_5},
	{"1.20.4", JE_1_20_4},
	{"1.20.2", JE_1_20_2},
	{"1.20.1", JE_1_20_1},
	{"1.20", JE_1_20},
	{"1.19.4", JE_1_19_4},
	{"1.19.3", JE_1_19_3},
	{"1.19.2", JE_1_19_2},
	{"1.19.1", JE_1_19_1},
	{"1.19", JE_1_19},
	{"1.18.2", JE_1_18_2},
	{"1.18", JE_1_18},
	{"1.17.1", JE_1_17_1},
	{"1.17", JE_1_17},
	{"1.16.5", JE_1_16_5},
	{"1.16", JE_1_16},
	{"1.15.2", JE_1_15_2},
	{"1.15", JE_1_15},
	{"1.14.4", JE_1_14_4},
	{"1.14", JE_1_14},
	{"1.13.2", JE_1_13_2},
	{"1.13.1", JE_1_13_1},
	{"1.13", JE_1_13},
	{"1.12.2", JE_1_12_2},
	{"1.12.1", JE_1_12_1},
	{"1.12", JE_1_12},
	{"1.11.2", JE_1_11_2},
	{"1.11.1", JE_1_11_1},
	{"1.11", JE_1_11},
	{"1.10.2", JE_1_10_2},
	{"1.10.1", JE_1_10_1},
	{"1.10", JE_1_10},
	{"1.9.4", JE_1_9_4},
	{"1.9.3", JE_1_9_3},
	{"1.9.2", JE_1_9_2},
	{"1.9.1", JE_1_9_1},
	{"1.9", JE_1_9},
}

// Releases returns the known releases, newest first.
func Releases() []Release {
	out := make([]Release, len(releases))
	copy(out, releases)
	return out
}

// VersionName returns the newest release whose DataVersion is not above
// dataVersion, e.g. "1.20.1" for 3465. Returns "" for values older than 1.9.
func VersionName(dataVersion int32) string {
	for _, r := range releases {
		if dataVersion >= r.DataVersion {
			return r.Name
		}
	}
	return ""
}

// ParseVersion resolves a release name ("1.20.1"), a constant name
// ("JE_1_20_1") or a raw integer ("3465") to a DataVersion.
func ParseVersion(s string) (int32, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(n), nil
	}
	name := s
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "JE_"); ok {
		name = strings.ReplaceAll(rest, "_", ".")
	}
	for _, r := range releases {
		if r.Name == name {
			return r.DataVersion, nil
		}
	}
	return 0, fmt.Errorf("unknown Minecraft version %q", s)
}
