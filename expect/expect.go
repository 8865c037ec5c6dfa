package expect

import (
	"sort"
	"strings"

	"github.com/snapp-incubator/fetchmock/mock"
)

// Traffic is what the assertions read. *mock.Registry implements it.
type Traffic interface {
	Requests() []mock.Entry
	RequestsMissingResponse() []mock.MissingResponse
	ExhaustedRequests() []mock.MissingResponse
	DeepUtilizedDescriptors() []mock.Descriptor
}

// Expectations evaluates assertions over traffic using the URL policy of matcher.
type Expectations struct {
	traffic Traffic
	matcher mock.Matcher
}

// New creates Expectations.
func New(traffic Traffic, matcher mock.Matcher) *Expectations {
	return &Expectations{traffic: traffic, matcher: matcher}
}

// fetched returns the logged requests to path, narrowed by the method option.
func (e *Expectations) fetched(path string, o options) []mock.Request {
	var out []mock.Request
	for _, entry := range e.traffic.Requests() {
		r := entry.Request
		if !e.matcher.SameURL(r.URL, o.host, path, o.catchParams) {
			continue
		}
		if o.method != "" && !strings.EqualFold(o.method, r.Method) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (e *Expectations) target(path string, o options) string {
	return e.matcher.NormalizedURL(mock.Descriptor{Host: o.host, Path: path, CatchParams: o.catchParams})
}

// ToHaveBeenFetched passes when at least one request was sent to path, whatever its body.
func (e *Expectations) ToHaveBeenFetched(path string, opts ...Option) Result {
	o := newOptions(opts)

	if len(e.fetched(path, o)) > 0 {
		return pass()
	}
	return fail("expected %s to have been fetched, but it was not\n\nfetched:\n%s", e.target(path, o), e.fetchedList())
}

// ToHaveBeenFetchedTimes passes when exactly n requests were sent to path.
func (e *Expectations) ToHaveBeenFetchedTimes(path string, n int, opts ...Option) Result {
	o := newOptions(opts)

	got := len(e.fetched(path, o))
	if got == n {
		return pass()
	}
	return fail("expected %s to have been fetched %d time(s), but it was fetched %d time(s)", e.target(path, o), n, got)
}

// ToHaveBeenFetchedWith passes when a request to path was sent with the method
// and the body given as options. Without a Body option the body is not checked.
func (e *Expectations) ToHaveBeenFetchedWith(path string, opts ...Option) Result {
	o := newOptions(opts)
	target := e.target(path, o)

	all := e.fetched(path, options{host: o.host, catchParams: o.catchParams})
	if len(all) == 0 {
		return fail("expected %s to have been fetched, but it was not\n\nfetched:\n%s", target, e.fetchedList())
	}

	reqs := all
	if o.method != "" {
		reqs = e.fetched(path, o)
		if len(reqs) == 0 {
			return fail("expected %s to have been fetched with method %s, but it was fetched with %s",
				target, strings.ToUpper(o.method), strings.Join(methods(all), ", "))
		}
	}

	if !o.hasBody {
		return pass()
	}

	var bodies []any
	for _, r := range reqs {
		if b, ok := r.ParsedBody(); ok {
			bodies = append(bodies, b)
		}
	}
	if len(bodies) == 0 {
		return fail("expected %s to have been fetched with a body, but none was found", target)
	}

	for _, b := range bodies {
		if mock.JSONEqual(o.body, b) {
			return pass()
		}
	}

	received := bodies[len(bodies)-1]
	return fail("expected %s to have been fetched with body:\n%s\n\nreceived:\n%s\n\ndiff:\n%s",
		target, prettyJSON(o.body), prettyJSON(received), bodyDiff(o.body, received))
}

// ToMatchNetworkRequests passes when every request was served by a mock and the
// fully consumed descriptors are exactly descs, in any order.
func (e *Expectations) ToMatchNetworkRequests(descs ...mock.Descriptor) Result {
	if missing := e.traffic.RequestsMissingResponse(); len(missing) > 0 {
		return fail("the following requests are missing a mocked response:\n%s", listRequests(missing))
	}

	if exhausted := e.traffic.ExhaustedRequests(); len(exhausted) > 0 {
		return fail("the following requests were sent after all multiple responses of their mock had been returned:\n%s", listRequests(exhausted))
	}

	unused, unexpected := diffDescriptors(descs, e.traffic.DeepUtilizedDescriptors())
	if len(unused) > 0 {
		return fail("there are mocked responses not being used:\n%s", listDescriptors(unused))
	}
	if len(unexpected) > 0 {
		return fail("the following mocked responses were used but not expected:\n%s", listDescriptors(unexpected))
	}

	return pass()
}

func (e *Expectations) fetchedList() string {
	var sb strings.Builder
	for _, entry := range e.traffic.Requests() {
		sb.WriteString("  " + entry.Request.Method + " " + entry.Request.URL + "\n")
	}
	if sb.Len() == 0 {
		return "  (nothing)\n"
	}
	return sb.String()
}

// diffDescriptors compares both lists as multisets. It returns the declared
// descriptors missing from used and the used descriptors missing from declared.
func diffDescriptors(declared, used []mock.Descriptor) (unused, unexpected []mock.Descriptor) {
	counts := map[string]int{}
	for _, d := range used {
		counts[descriptorKey(d)]++
	}

	for _, d := range declared {
		k := descriptorKey(d)
		if counts[k] > 0 {
			counts[k]--
			continue
		}
		unused = append(unused, d)
	}

	for _, d := range used {
		k := descriptorKey(d)
		if counts[k] > 0 {
			counts[k]--
			unexpected = append(unexpected, d)
		}
	}

	return unused, unexpected
}

func methods(reqs []mock.Request) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range reqs {
		m := strings.ToUpper(r.Method)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
