package challenge

import (
	"fmt"
	"strings"
)

// Difficulty is the fixed difficulty grade of a challenge.
type Difficulty string

const (
	// Medium challenges are focused bug hunts in familiar territory.
	Medium Difficulty = "Medium"
	// Hard challenges require algorithmic rework.
	Hard Difficulty = "Hard"
	// Expert challenges are open-ended systems builds.
	Expert Difficulty = "Expert"
)

// Difficulties lists all valid grades in ascending order.
var Difficulties = []Difficulty{Medium, Hard, Expert}

// ParseDifficulty converts a case-insensitive string into a
// Difficulty. It returns an error for anything outside the fixed
// set.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Valid reports whether d is one of the fixed grades.
func (d Difficulty) Valid() bool {
	switch d {
	case Medium, Hard, Expert:
		return true
	}
	return false
}

// String returns the canonical display form.
func (d Difficulty) String() string { return string(d) }
