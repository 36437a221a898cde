package sensors

import (
	"fmt"
	"strconv"
	"strings"
)

// Temperature in degrees celsius
type Temperature int

// millidegrees per degree, as used by sysfs
const millidegrees = 1000

// ParseMillidegrees parses sysfs style output (e.g. "45000\n") and converts it to degrees,
// rounding towards negative infinity.
func ParseMillidegrees(raw string) (Temperature, error) {
	value, err := parseInt(raw)
	if err != nil {
		return 0, err
	}
	result := value / millidegrees
	if value%millidegrees != 0 && value < 0 {
		result--
	}
	return Temperature(result), nil
}

// ParseDegrees parses output that is already in degrees.
func ParseDegrees(raw string) (Temperature, error) {
	value, err := parseInt(raw)
	if err != nil {
		return 0, err
	}
	return Temperature(value), nil
}

func parseInt(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ParseError{Input: raw, Err: err}
	}
	return value, nil
}

func FormatCPU(t Temperature) string {
	return fmt.Sprintf("C: %d °C", t)
}

func FormatGPU(t Temperature) string {
	return fmt.Sprintf("G: %d °C", t)
}
