package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lostark-hub/partyfinder/internal/constants"
)

func TestLanguagesParse(t *testing.T) {
	langs := NewLanguages("en", []string{"en", "ko", "not a tag"})
	assert.Equal(t, []string{"en", "ko"}, langs.Supported())

	got, ok := langs.Parse("ko")
	assert.True(t, ok)
	assert.Equal(t, "ko", got)

	got, ok = langs.Parse("ko-KR")
	assert.True(t, ok)
	assert.Equal(t, "ko", got)

	_, ok = langs.Parse("de")
	assert.False(t, ok)
	_, ok = langs.Parse("")
	assert.False(t, ok)
}

func TestLanguagesResolve(t *testing.T) {
	langs := NewLanguages("en", []string{"ko"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "en", langs.Resolve(req, ""))

	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")
	assert.Equal(t, "ko", langs.Resolve(req, ""))

	req.AddCookie(&http.Cookie{Name: constants.LanguageCookieName, Value: "en"})
	assert.Equal(t, "en", langs.Resolve(req, ""))

	assert.Equal(t, "ko", langs.Resolve(req, "ko"))
}
