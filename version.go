package uwr

import "fmt"

var (
	major = 0
	minor = 3
	patch = 0
)

func StringVersion() string {
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}
