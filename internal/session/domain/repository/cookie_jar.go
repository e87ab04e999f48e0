package repository

// CookieJar gives read access to a request's cookies by name.
//
// Values returned by a CookieJar have already been authenticated and
// decrypted by the host's secure-cookie layer. A jar reports ok=false when
// the cookie is absent; implementations must not modify the jar on read.
type CookieJar interface {
	Cookie(name string) (value string, ok bool)
}

// MapCookieJar is a CookieJar over a plain map, for non-HTTP callers and tests.
type MapCookieJar map[string]string

// Cookie implements CookieJar
func (m MapCookieJar) Cookie(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
