package enums

import "fmt"

// UserLevel represents the account permission tier.
type UserLevel string

const (
	UserLevelUser      UserLevel = "user"
	UserLevelAdmin     UserLevel = "admin"
	UserLevelModerator UserLevel = "moderator"
)

var validUserLevels = []UserLevel{
	UserLevelUser,
	UserLevelAdmin,
	UserLevelModerator,
}

// String implements fmt.Stringer.
func (u UserLevel) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserLevel.
func (u UserLevel) IsValid() bool {
	for _, candidate := range validUserLevels {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserLevel converts raw input into a UserLevel.
func ParseUserLevel(value string) (UserLevel, error) {
	for _, candidate := range validUserLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user level %q", value)
}
