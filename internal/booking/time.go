package booking

import "fmt"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 || t[2] != ':' {
		return 0
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// ClockParts splits "HH:MM" into hour and minute.
func ClockParts(t string) (hour, minute int) {
	m := TimeToMinutes(t)
	return m / 60, m % 60
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// OverlapMinutes calculates the overlapping minutes between two time ranges.
// Returns 0 if there is no overlap.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	overlapStart := max(TimeToMinutes(start1), TimeToMinutes(start2))
	overlapEnd := min(TimeToMinutes(end1), TimeToMinutes(end2))

	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// TimesOverlap returns true if two time ranges overlap.
// Two time ranges overlap if: start1 < end2 AND end1 > start2
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return TimeToMinutes(start1) < TimeToMinutes(end2) && TimeToMinutes(end1) > TimeToMinutes(start2)
}
