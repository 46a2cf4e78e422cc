package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/guindo/fireplan-api/internal/models"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() models.UserProfile {
	return models.UserProfile{
		Name:       "Ana Souza",
		Age:        24,
		University: "USP",
		Major:      "Computer Science",
		Location:   "São Paulo",
		RetireAge:  "45",
	}
}

func TestNormalize_ValidProfile(t *testing.T) {
	p := validProfile()
	p.Name = "  Ana Souza \n"

	got, err := Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Name)
	assert.Equal(t, "  Ana Souza \n", p.Name, "input must not be modified")
}

func TestNormalize_TruncatesLongFields(t *testing.T) {
	p := validProfile()
	p.DreamProjects = strings.Repeat("a", 2500)
	p.PassionTopics = strings.Repeat("é", 2001)

	got, err := Normalize(p)
	require.NoError(t, err)
	assert.Len(t, got.DreamProjects, MaxFieldLength)
	assert.Equal(t, MaxFieldLength, utf8.RuneCountInString(got.PassionTopics))
}

func TestNormalize_StripsOnlyBrackets(t *testing.T) {
	p := validProfile()
	p.KeySkills = "<script>{{.Secret}}</script> & 'quotes' \"double\" 100%"

	got, err := Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, "script.Secret/script & 'quotes' \"double\" 100%", got.KeySkills)
}

func TestNormalize_AgeBounds(t *testing.T) {
	tests := []struct {
		age   int
		valid bool
	}{
		{15, false},
		{16, true},
		{100, true},
		{101, false},
		{0, false},
	}

	for _, tt := range tests {
		p := validProfile()
		p.Age = tt.age

		_, err := Normalize(p)
		if tt.valid {
			assert.NoError(t, err, "age %d", tt.age)
			continue
		}

		var verr *Error
		require.ErrorAs(t, err, &verr, "age %d", tt.age)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "age", verr.Fields[0].Field)
	}
}

func TestNormalize_RequiredFields(t *testing.T) {
	for _, field := range []string{"name", "university", "major", "location"} {
		t.Run(field, func(t *testing.T) {
			p := validProfile()
			switch field {
			case "name":
				p.Name = "   "
			case "university":
				p.University = ""
			case "major":
				p.Major = "\t"
			case "location":
				p.Location = ""
			}

			_, err := Normalize(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, field, verr.Fields[0].Field)
			assert.Equal(t, field+" is required", verr.Fields[0].Message)
		})
	}
}

func TestNormalize_BracketsOnlyNameIsEmpty(t *testing.T) {
	p := validProfile()
	p.Name = "<>{}"

	_, err := Normalize(p)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)
}

func TestNormalize_ReportsEveryBrokenField(t *testing.T) {
	_, err := Normalize(models.UserProfile{Age: 12})

	var verr *Error
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "age", "university", "major", "location"}, fields)
	assert.Contains(t, verr.Error(), "age must be at least 16")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "", SanitizeString("   "))
	assert.Equal(t, "a b", SanitizeString(" a b "))
	assert.Equal(t, "ab", SanitizeString("<a>{b}"))
	// truncation happens before stripping, so the result can be shorter
	long := strings.Repeat("x", MaxFieldLength-1) + "<y"
	assert.Equal(t, strings.Repeat("x", MaxFieldLength-1), SanitizeString(long))
}
