// Package nav tracks where the browser has been and decides where
// typed input should take it.
package nav

import (
	"sort"
	"strings"
)

// History is a linear back/forward stack. position always sits in
// [-1, len(stack)), -1 meaning nothing visited yet.
type History struct {
	stack    []string
	position int
}

func NewHistory() *History {
	return &History{position: -1}
}

// Current returns the entry under the cursor, or "" when empty.
func (h *History) Current() string {
	if h.position < 0 {
		return ""
	}
	return h.stack[h.position]
}

// Add records a visit. Any forward entries are discarded, so going
// back and navigating somewhere new rewrites the future.
func (h *History) Add(url string) {
	h.stack = append(h.stack[:h.position+1], url)
	h.position++
}

// Back moves the cursor one entry toward the past. At the first entry
// it reports false and stays put.
func (h *History) Back() (string, bool) {
	if h.position < 1 {
		return "", false
	}
	h.position--
	return h.stack[h.position], true
}

// Forward moves the cursor one entry toward the present. With no
// forward entries it reports false and stays put.
func (h *History) Forward() (string, bool) {
	if h.position+1 >= len(h.stack) {
		return "", false
	}
	h.position++
	return h.stack[h.position], true
}

// Entries returns a copy of the stack, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.stack))
	copy(out, h.stack)
	return out
}

func (h *History) Position() int {
	return h.position
}

// Restore replaces the stack wholesale, clamping the cursor into
// range. Used when resuming a saved session.
func (h *History) Restore(stack []string, position int) {
	h.stack = make([]string, len(stack))
	copy(h.stack, stack)
	if position >= len(h.stack) {
		position = len(h.stack) - 1
	}
	if position < -1 {
		position = -1
	}
	if len(h.stack) == 0 {
		position = -1
	}
	h.position = position
}

// Redirector rewrites URLs through user-configured substitution rules,
// typically swapping tracking-heavy frontends for lightweight mirrors.
type Redirector struct {
	rules []rule
}

type rule struct {
	from, to string
}

// NewRedirector builds a redirector from a substring → replacement
// map. Rules are ordered by their match string so application order is
// stable regardless of map iteration.
func NewRedirector(rules map[string]string) *Redirector {
	r := &Redirector{}
	r.SetRules(rules)
	return r
}

// SetRules replaces the rule table.
func (r *Redirector) SetRules(rules map[string]string) {
	r.rules = r.rules[:0]
	for from, to := range rules {
		if from == "" {
			continue
		}
		r.rules = append(r.rules, rule{from: from, to: to})
	}
	sort.Slice(r.rules, func(i, j int) bool { return r.rules[i].from < r.rules[j].from })
}

// Apply rewrites url through the first rule whose match string occurs
// in it. Matching is plain substring search over the whole URL, and
// only the first occurrence is replaced. Unmatched URLs pass through.
func (r *Redirector) Apply(url string) string {
	for _, rl := range r.rules {
		if strings.Contains(url, rl.from) {
			return strings.Replace(url, rl.from, rl.to, 1)
		}
	}
	return url
}

// Resolve turns typed input into a fetchable URL. Input starting with
// https:// is taken as an address; everything else becomes a search
// query with spaces joined by +. Empty input resolves to nothing.
func Resolve(input, searchURL string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if strings.HasPrefix(input, "https://") {
		return input
	}
	return searchURL + strings.ReplaceAll(input, " ", "+")
}

// Navigator couples the history stack with the redirect table. The
// returned URLs are what the caller should fetch.
type Navigator struct {
	History  *History
	redirect *Redirector
}

func New(rules map[string]string) *Navigator {
	return &Navigator{
		History:  NewHistory(),
		redirect: NewRedirector(rules),
	}
}

// Open applies redirect rules and records the result as the new
// current entry.
func (n *Navigator) Open(url string) string {
	final := n.redirect.Apply(url)
	n.History.Add(final)
	return final
}

// Back steps the history cursor back and returns the URL to re-fetch.
func (n *Navigator) Back() (string, bool) {
	return n.History.Back()
}

// Forward steps the history cursor forward and returns the URL to
// re-fetch.
func (n *Navigator) Forward() (string, bool) {
	return n.History.Forward()
}

// SetRules swaps the redirect table, used on config reload. Already
// recorded history entries are not rewritten.
func (n *Navigator) SetRules(rules map[string]string) {
	n.redirect.SetRules(rules)
}
