// Copyright 2025 The Lattice Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package router is an embeddable HTTP request-routing core: a
// compressed parameter trie, a typed-parameter binder built once via
// reflect per rule, and a per-method dispatch table layered with HTTP
// semantics (HEAD, OPTIONS, method-not-allowed, trailing-slash
// redirect, catch-all, WebSocket upgrade). It consumes a parsed request
// and produces a response; the HTTP parser, socket/TLS layer and
// WebSocket frame protocol remain the embedding application's concern.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dimfeld/httppath"
	"github.com/lattice-http/router/pattern"
)

// specialRedirectSlash is the reserved rule id meaning "the canonical
// URL has a trailing slash"; 0 means no rule at all.
const specialRedirectSlash uint64 = 1

// methodTable is the per-HTTP-method half of the router: one trie, plus
// whether anything has been registered into it (used by the OPTIONS
// /* enumeration).
type methodTable struct {
	trie  *trie
	empty bool
}

func newMethodTable() *methodTable {
	return &methodTable{trie: newTrie(), empty: true}
}

// Router owns every registered rule, one trie per HTTP method, and the
// optional catch-all rule. It has two lifecycle phases: accumulate
// rules, then Validate(); after that, ServeHTTP/Handle/HandleUpgrade may
// be called concurrently from any number of goroutines with no
// synchronization, because nothing they touch is mutated again.
type Router struct {
	mu      sync.Mutex
	pending []Rule
	catchAll Rule

	// rules is indexed by rule id; slots 0 and 1 are reserved and stay
	// nil. Populated once, inside Validate().
	rules        []Rule
	methodTables [methodCount]*methodTable

	validateOnce sync.Once
	validateErr  error
	frozen       bool

	diagnostics   DiagnosticHandler
	observability ObservabilityRecorder

	respPool sync.Pool
}

// New constructs a Router. It is not usable for dispatch until Validate
// succeeds, which happens automatically on first use.
func New(opts ...Option) *Router {
	rt := &Router{}
	for i := range rt.methodTables {
		rt.methodTables[i] = newMethodTable()
	}
	rt.respPool.New = func() interface{} { return newResponse() }
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// MustNew is equivalent to New and never panics: since registration
// happens after construction here, there is nothing for it to validate.
// It exists for callers that want a New/MustNew pair in the teacher's
// style, for naming symmetry with the rest of this package's conventions.
func MustNew(opts ...Option) *Router {
	return New(opts...)
}

// addPending panics with ErrRouterFrozen if the router has already been
// validated: registration and serving are two non-overlapping phases, and
// adding a rule after traffic may already be dispatching against the
// built tries would silently never take effect.
func (rt *Router) addPending(r Rule) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.frozen {
		panic(fmt.Errorf("%w: cannot register a new rule", ErrRouterFrozen))
	}
	rt.pending = append(rt.pending, r)
}

// Add registers handler under pat for the given methods. The rule
// variant (typed vs dynamic) is chosen automatically from whether pat
// carries any parameter tokens.
func (rt *Router) Add(pat string, methods MethodSet, handler interface{}) *Router {
	if methods == 0 {
		methods = DefaultMethods
	}
	rt.addPending(newRule(pat, methods, handler))
	return rt
}

func newRule(pat string, methods MethodSet, handler interface{}) Rule {
	base := ruleBase{pattern: pat, methods: methods, handler: handler}
	kinds, err := pattern.Kinds(pat)
	if err != nil || len(kinds) == 0 {
		return &typedRule{ruleBase: base}
	}
	return &dynamicRule{ruleBase: base}
}

// Get registers a GET-only handler. Shorthands for the other plain
// methods follow the same shape.
func (rt *Router) Get(pattern string, handler interface{}) *Router {
	return rt.Add(pattern, Methods(MethodGet), handler)
}

func (rt *Router) Post(pattern string, handler interface{}) *Router {
	return rt.Add(pattern, Methods(MethodPost), handler)
}

func (rt *Router) Put(pattern string, handler interface{}) *Router {
	return rt.Add(pattern, Methods(MethodPut), handler)
}

func (rt *Router) Delete(pattern string, handler interface{}) *Router {
	return rt.Add(pattern, Methods(MethodDelete), handler)
}

func (rt *Router) Patch(pattern string, handler interface{}) *Router {
	return rt.Add(pattern, Methods(MethodPatch), handler)
}

// WebSocket registers an upgrade-only rule. A plain request against
// pattern always 404s; only HandleUpgrade can reach it.
func (rt *Router) WebSocket(pattern string, handlers WebSocketHandlers) *Router {
	rt.addPending(&webSocketRule{
		ruleBase: ruleBase{pattern: pattern, methods: Methods(MethodGet)},
		handlers: handlers,
	})
	return rt
}

// CatchAll registers the fallback handler invoked for any request that
// would otherwise 404. There can be at most one; a second call replaces
// the first.
func (rt *Router) CatchAll(handler interface{}) *Router {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.frozen {
		panic(fmt.Errorf("%w: cannot register a catch-all", ErrRouterFrozen))
	}
	rt.catchAll = &catchAllRule{ruleBase: ruleBase{handler: handler, name: "catch-all"}}
	return rt
}

// Validate builds the per-method tries from every registered rule. It
// runs at most once; subsequent calls return the same result. Handle,
// HandleUpgrade and ServeHTTP call it lazily on first use, so explicit
// invocation is only needed to surface build errors before serving
// traffic.
func (rt *Router) Validate() error {
	rt.validateOnce.Do(func() {
		rt.validateErr = rt.doValidate()
	})
	return rt.validateErr
}

func (rt *Router) doValidate() error {
	rt.mu.Lock()
	rt.frozen = true
	rt.mu.Unlock()

	rt.rules = make([]Rule, 2, len(rt.pending)+2)

	for _, r := range rt.pending {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %q (%s): %w", r.Pattern(), ruleDisplayName(r), err)
		}

		ruleID := uint64(len(rt.rules))
		rt.rules = append(rt.rules, r)
		setRuleID(r, ruleID)

		for _, m := range allMethods {
			if !r.AllowedMethods().Has(m) {
				continue
			}
			mt := rt.methodTables[m]
			if err := mt.trie.add(r.Pattern(), ruleID); err != nil {
				return fmt.Errorf("rule %q (%s): %w", r.Pattern(), ruleDisplayName(r), err)
			}
			mt.empty = false

			if strings.HasSuffix(r.Pattern(), "/") && len(r.Pattern()) > 1 {
				stripped := r.Pattern()[:len(r.Pattern())-1]
				if err := mt.trie.add(stripped, specialRedirectSlash); err != nil {
					return fmt.Errorf("rule %q (%s): implicit trailing-slash redirect conflicts: %w", r.Pattern(), ruleDisplayName(r), err)
				}
			}
		}
	}

	for _, mt := range rt.methodTables {
		mt.trie.optimize()
	}

	if rt.catchAll != nil {
		if err := rt.catchAll.Validate(); err != nil {
			return fmt.Errorf("catch-all: %w", err)
		}
	}

	return nil
}

func ruleDisplayName(r Rule) string {
	if r.Name() != "" {
		return r.Name()
	}
	return "unnamed"
}

// setRuleID is a small escape hatch so doValidate can assign the rule id
// without every variant needing a public setter; it works because every
// concrete rule type embeds ruleBase.
func setRuleID(r Rule, id uint64) {
	switch v := r.(type) {
	case *typedRule:
		v.ruleID = id
	case *dynamicRule:
		v.ruleID = id
	case *webSocketRule:
		v.ruleID = id
	case *catchAllRule:
		v.ruleID = id
	}
}

func (rt *Router) ruleFor(ruleID uint64) Rule {
	if ruleID >= uint64(len(rt.rules)) || rt.rules[ruleID] == nil {
		panic(fmt.Errorf("%w: id %d", ErrTrieCorruption, ruleID))
	}
	return rt.rules[ruleID]
}

// mustValidate lazily validates and panics on build-time failure; build
// errors are programming errors the embedding application is expected to
// have caught via an explicit Validate() call before serving traffic.
func (rt *Router) mustValidate() {
	if err := rt.Validate(); err != nil {
		panic(err)
	}
}

// Handle dispatches a single request and returns the response. It never
// performs I/O; ServeHTTP is the net/http adapter that does.
func (rt *Router) Handle(req *Request) *Response {
	rt.mustValidate()
	return rt.handleWith(req, newResponse())
}

// handleWith is Handle's body, taking the Response to populate rather
// than always allocating one. ServeHTTP uses this directly against a
// pooled Response; Handle uses it against a freshly allocated one, since
// a Response returned through the public API may outlive the call and
// so can't safely come from the pool.
func (rt *Router) handleWith(req *Request, resp *Response) *Response {
	method := req.Method
	effective := method
	if method == MethodHead {
		resp.HeadResponse = true
		effective = MethodGet
	}
	if method == MethodOptions {
		return rt.handleOptions(req, resp)
	}

	ruleID, bp, ok := rt.methodTables[effective].trie.find(req.Path)
	if !ok {
		return rt.handleUnmatched(req, resp, effective)
	}
	if ruleID == specialRedirectSlash {
		return rt.handleRedirect(req, resp)
	}

	rule := rt.ruleFor(ruleID)
	if !rt.safeInvoke(rule, req, resp, bp) {
		rt.recordMatch(req, rule, resp)
	}
	return resp
}

// HandleUpgrade performs the same matching as Handle but skips the
// HEAD/OPTIONS handling, and on a match transfers ownership of sock into
// the rule's InvokeUpgrade.
func (rt *Router) HandleUpgrade(req *Request, sock Socket) *Response {
	rt.mustValidate()
	resp := newResponse()

	ruleID, _, ok := rt.methodTables[req.Method].trie.find(req.Path)
	if !ok {
		resp.Status = http.StatusNotFound
		return resp
	}
	if ruleID == specialRedirectSlash {
		return rt.handleRedirect(req, resp)
	}

	rule := rt.ruleFor(ruleID)
	rt.safeInvokeUpgrade(rule, req, resp, sock)
	return resp
}

func (rt *Router) handleUnmatched(req *Request, resp *Response, effective Method) *Response {
	for _, m := range allMethods {
		if m == effective {
			continue
		}
		if _, _, ok := rt.methodTables[m].trie.find(req.Path); ok {
			resp.Status = http.StatusMethodNotAllowed
			rt.recordMethodNotAllowed(req, resp)
			return resp
		}
	}

	if rt.catchAll != nil {
		if !rt.safeInvoke(rt.catchAll, req, resp, BoundParams{}) {
			rt.recordMatch(req, rt.catchAll, resp)
		}
		return resp
	}

	resp.Status = http.StatusNotFound
	rt.recordNotFound(req, resp)
	return resp
}

func (rt *Router) handleOptions(req *Request, resp *Response) *Response {
	resp.ManualLengthHeader = true

	var methods []string
	matched := req.Path == "/*"

	for _, m := range allMethods {
		if m == MethodOptions || m == MethodHead {
			continue
		}
		if req.Path == "/*" {
			if !rt.methodTables[m].empty {
				methods = append(methods, m.String())
			}
			continue
		}
		if _, _, ok := rt.methodTables[m].trie.find(req.Path); ok {
			methods = append(methods, m.String())
			matched = true
		}
	}

	if !matched {
		resp.Status = http.StatusNotFound
		rt.recordNotFound(req, resp)
		return resp
	}

	resp.Status = http.StatusNoContent
	allow := append([]string{"OPTIONS", "HEAD"}, methods...)
	resp.Header.Set("Allow", strings.Join(allow, ", "))
	rt.emitDiagnostic(DiagnosticEvent{Method: req.Method, Path: req.Path, Status: resp.Status, Kind: DiagnosticMatch})
	return resp
}

func (rt *Router) handleRedirect(req *Request, resp *Response) *Response {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	location := req.Path + "/"
	if req.Host != "" {
		location = scheme + "://" + req.Host + req.Path + "/"
	}
	resp.Status = http.StatusMovedPermanently
	resp.Header.Set("Location", location)
	rt.recordRedirect(req, resp)
	return resp
}

// safeInvoke calls rule.Invoke under panic recovery: a handler exception
// becomes a 500 with no body, per the exception-isolation contract. A
// trie-corruption panic (ruleFor) is a programming error and is not
// caught here — it propagates out of Handle entirely. It reports whether
// the handler panicked, so the caller records a match only when it did
// not.
func (rt *Router) safeInvoke(rule Rule, req *Request, resp *Response, bp BoundParams) (panicked bool) {
	defer func() {
		if p := recover(); p != nil {
			resp.Status = http.StatusInternalServerError
			resp.Body = nil
			resp.Header = make(http.Header)
			rt.recordPanic(req, rule, p)
			panicked = true
		}
	}()
	rule.Invoke(req, resp, bp)
	return false
}

func (rt *Router) safeInvokeUpgrade(rule Rule, req *Request, resp *Response, sock Socket) {
	defer func() {
		if p := recover(); p != nil {
			resp.Status = http.StatusInternalServerError
			resp.Body = nil
			rt.recordPanic(req, rule, p)
		}
	}()
	rule.InvokeUpgrade(req, resp, sock)
}

// ServeHTTP is the net/http adapter: the only place in this package that
// touches net/http I/O. It cleans the request path the way
// zalando/skipper's matcher does before handing it to the trie, so
// "."/".."/duplicate-slash segments never leak through as literal
// characters.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method, ok := methodFromString(r.Method)
	if !ok {
		// Outside the known enumeration: the core produces no response
		// for this case. Writing nothing here leaves net/http's default
		// empty 200, which is the adapter's own policy choice, not part
		// of the routing core's contract.
		return
	}

	rt.mustValidate()

	req := &Request{
		Method: method,
		Path:   httppath.Clean(r.URL.Path),
		Header: r.Header,
		Host:   r.Host,
		TLS:    r.TLS,
		Raw:    r,
	}

	resp := rt.respPool.Get().(*Response)
	resetResponse(resp)

	rt.handleWith(req, resp)
	flushResponse(w, resp)

	rt.respPool.Put(resp)
}

func flushResponse(w http.ResponseWriter, resp *Response) {
	header := w.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	if !resp.ManualLengthHeader && header.Get("Content-Length") == "" {
		header.Set("Content-Length", fmt.Sprintf("%d", len(resp.Body)))
	}
	w.WriteHeader(resp.Status)
	if resp.HeadResponse {
		return
	}
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

// Serve starts an HTTP server on addr with a 10-second
// ReadHeaderTimeout (no other timeouts are set), in the teacher's
// Serve/ServeTLS style.
func (rt *Router) Serve(addr string) error {
	srv := rt.newServer(addr)
	return srv.ListenAndServe()
}

// ServeTLS is Serve, terminating TLS with certFile/keyFile.
func (rt *Router) ServeTLS(addr, certFile, keyFile string) error {
	srv := rt.newServer(addr)
	return srv.ListenAndServeTLS(certFile, keyFile)
}

func (rt *Router) newServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           rt,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
