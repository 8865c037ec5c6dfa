package mock

// Matcher decides whether an observed request matches a descriptor.
type Matcher struct {
	// DefaultHost is used for descriptors without a host.
	DefaultHost string
	// HandleQueryParams ignores query strings unless a descriptor sets CatchParams.
	HandleQueryParams bool
}

// Matches reports whether observed and candidate have the same MatchKey.
func (m Matcher) Matches(observed Request, candidate Descriptor) bool {
	return m.KeyForRequest(observed, candidate).Equal(m.KeyForDescriptor(candidate))
}

// KeyForDescriptor builds the key of a descriptor.
func (m Matcher) KeyForDescriptor(d Descriptor) MatchKey {
	loc := resolveLocation(m.host(d.Host), d.Path)

	k := MatchKey{
		URL:    loc.String(m.stripQuery(d.CatchParams)),
		Method: d.NormalizedMethod(),
	}

	if d.RequestBody != nil {
		body, err := normalizeJSON(d.RequestBody)
		if err == nil {
			k.Body, k.HasBody = body, true
		}
	}

	return k
}

// KeyForRequest builds the key of a request as seen by candidate: the body is
// left out when candidate does not care about it, and so is the host when
// candidate resolves to none.
func (m Matcher) KeyForRequest(r Request, candidate Descriptor) MatchKey {
	loc := parseLocation(r.URL)
	if m.host(candidate.Host) == "" && !isAbsolute(candidate.Path) {
		loc.host = ""
	}

	k := MatchKey{
		URL:    loc.String(m.stripQuery(candidate.CatchParams)),
		Method: normalizeMethod(r.Method),
	}

	if candidate.RequestBody != nil {
		k.Body, k.HasBody = r.ParsedBody()
	}

	return k
}

// SameURL reports whether rawURL points at host+path under the query policy.
// It ignores methods and bodies.
func (m Matcher) SameURL(rawURL, host, path string, catchParams bool) bool {
	d := Descriptor{Host: host, Path: path, CatchParams: catchParams}
	return m.KeyForRequest(Request{URL: rawURL}, d).URL == m.KeyForDescriptor(d).URL
}

// NormalizedURL returns the URL of d the way it takes part in matching.
func (m Matcher) NormalizedURL(d Descriptor) string {
	return m.KeyForDescriptor(d).URL
}

func (m Matcher) host(h string) string {
	if h != "" {
		return h
	}
	return m.DefaultHost
}

func (m Matcher) stripQuery(catchParams bool) bool {
	return m.HandleQueryParams && !catchParams
}
