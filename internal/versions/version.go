package versions

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

const (
	dateCodedPatternConstant          = `r(?P<year>[0-9]{2,4})(?P<subyear>[a-zA-Z]?)`
	dateCodedYearGroupConstant        = "year"
	dateCodedSubyearGroupConstant     = "subyear"
	dateCodedVersionTemplateConstant  = "%d.%d"
	dateCodedSubyearOriginConstant    = 'a'
	dateCodedSubyearOffsetConstant    = 1
	dateCodedMinorWithoutSubyearValue = 0
)

var dateCodedPattern = regexp.MustCompile(dateCodedPatternConstant)

// Version is a parsed release identifier ordered by PEP 440 rules.
type Version struct {
	value pep440.Version
}

// Coerce converts versionString into a Version. The boolean is false when
// neither the release grammar nor the date-coded grammar matches. Release
// segments larger than int64 do not parse.
func Coerce(versionString string) (Version, bool) {
	if releaseVersion, parseError := pep440.Parse(versionString); parseError == nil {
		return Version{value: releaseVersion}, true
	}
	return coerceDateCoded(versionString)
}

// FromMajorMinor builds the release Version "major.minor".
func FromMajorMinor(major int, minor int) (Version, error) {
	releaseVersion, parseError := pep440.Parse(fmt.Sprintf(dateCodedVersionTemplateConstant, major, minor))
	if parseError != nil {
		return Version{}, parseError
	}
	return Version{value: releaseVersion}, nil
}

// coerceDateCoded searches (without anchoring) for r<year><letter?>; trailing
// characters after the match are ignored.
func coerceDateCoded(versionString string) (Version, bool) {
	submatches := dateCodedPattern.FindStringSubmatch(versionString)
	if submatches == nil {
		return Version{}, false
	}

	yearValue := submatches[dateCodedPattern.SubexpIndex(dateCodedYearGroupConstant)]
	subyearValue := submatches[dateCodedPattern.SubexpIndex(dateCodedSubyearGroupConstant)]

	major, conversionError := strconv.Atoi(yearValue)
	if conversionError != nil {
		return Version{}, false
	}

	minor := dateCodedMinorWithoutSubyearValue
	if len(subyearValue) > 0 {
		subyearLetter := unicode.ToLower(rune(subyearValue[0]))
		minor = int(subyearLetter-dateCodedSubyearOriginConstant) + dateCodedSubyearOffsetConstant
	}

	dateCodedVersion, buildError := FromMajorMinor(major, minor)
	if buildError != nil {
		return Version{}, false
	}
	return dateCodedVersion, true
}

// Compare is negative when version sorts before other and positive when it sorts after.
func (version Version) Compare(other Version) int {
	return version.value.Compare(other.value)
}

// Equal reports whether both versions share the same canonical form, so 1.2.3 equals 1.2.3.0.
func (version Version) Equal(other Version) bool {
	return version.Compare(other) == 0
}

// IsPrerelease reports whether the version carries a pre-release or development segment.
func (version Version) IsPrerelease() bool {
	return version.value.IsPreRelease()
}

// String returns the canonical representation.
func (version Version) String() string {
	return version.value.String()
}
