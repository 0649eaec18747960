package pettests

import (
	"strconv"
	"strings"
)

const (
	russianChars = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"
	chineseChars = "的一是不了人我在有他这为之大来以个中上们"
	specialChars = "|\\/!@#$%^&*()-_=+`~?\"№;:[]{}"

	minAge = 1
	maxAge = 49
)

// Input is one value from an equivalence class of inputs, with a short identifier that is used
// in the test name.
type Input struct {
	ID    string
	Value string
}

// TextInputs returns the classes of values that are tried for the name and animal type of a pet.
func TextInputs() []Input {
	return []Input{
		{"empty", ""},
		{"255 symbols", generateString(255)},
		{"more than 1000 symbols", generateString(1001)},
		{"russian", russianChars},
		{"RUSSIAN", strings.ToUpper(russianChars)},
		{"chinese", chineseChars},
		{"specials", specialChars},
		{"digit", "123"},
	}
}

// AgeInputs returns the classes of values that are tried for the age of a pet.
func AgeInputs() []Input {
	return []Input{
		{"empty", ""},
		{"negative", "-1"},
		{"zero", "0"},
		{"min", "1"},
		{"greater than max", "100"},
		{"float", "1.5"},
		{"int_max", "2147483647"},
		{"int_max + 1", "2147483648"},
		{"specials", specialChars},
		{"russian", russianChars},
		{"RUSSIAN", strings.ToUpper(russianChars)},
		{"chinese", chineseChars},
	}
}

// IsAgeValid returns true if the service should accept the string as a pet's age: it must consist
// only of ASCII digits, and its value must be from 1 to 49.
func IsAgeValid(age string) bool {
	if age == "" {
		return false
	}
	for _, ch := range age {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(age)
	if err != nil {
		return false // out of range for int
	}
	return n >= minAge && n <= maxAge
}

// IsPetValid returns true if the service should accept these fields for creating a pet.
func IsPetValid(name, animalType, age string) bool {
	return name != "" && animalType != "" && IsAgeValid(age)
}

func generateString(n int) string {
	return strings.Repeat("x", n)
}
