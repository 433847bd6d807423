package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "emailaddress", Normalize("Email Address"))
	assert.Equal(t, "firstname", Normalize("first_name"))
	assert.Equal(t, "zipcode", Normalize("ZIP-Code"))
	assert.Equal(t, "phone2", Normalize("  Phone  #2  "))
	assert.Equal(t, "companyname", Normalize("Company\tName\n"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("!!! ---"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Email Address", "first_name", "a-b_c d", "日本語abc"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestKeySuffix(t *testing.T) {
	assert.Equal(t, "email", KeySuffix("contact.info.email"))
	assert.Equal(t, "email", KeySuffix("email"))
	assert.Equal(t, "", KeySuffix("contact."))
	assert.Equal(t, "", KeySuffix(""))
}

func TestFieldDisplayName(t *testing.T) {
	named := Field{Key: "obj.contact.email", Name: "Email"}
	assert.Equal(t, "Email", named.DisplayName())

	unnamed := Field{Key: "obj.contact.email"}
	assert.Equal(t, "email", unnamed.DisplayName())
}
