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

package router

import (
	"net/http"

	"github.com/lattice-http/router/pattern"
)

// Rule is the capability every registered handler entity exposes to the
// router, regardless of which of the four concrete variants it is.
// There is no shared state across variants; Rule is a closed interface,
// not a base class.
type Rule interface {
	Pattern() string
	AllowedMethods() MethodSet
	Name() string
	Validate() error
	Invoke(req *Request, resp *Response, bp BoundParams)
	InvokeUpgrade(req *Request, resp *Response, sock Socket)
}

// ruleBase holds the fields every variant carries: pattern text, the
// allowed-method bitset, an optional display name, and the rule id the
// router assigns during Validate(). It is not itself a Rule; each
// variant embeds it and supplies Invoke/InvokeUpgrade.
type ruleBase struct {
	pattern string
	methods MethodSet
	name    string
	ruleID  uint64
	handler interface{}
}

func (r *ruleBase) Pattern() string           { return r.pattern }
func (r *ruleBase) AllowedMethods() MethodSet { return r.methods }
func (r *ruleBase) Name() string              { return r.name }

// defaultInvokeUpgrade is shared by every variant except webSocketRule:
// an upgrade attempt against a regular rule is simply not found.
func defaultInvokeUpgrade(resp *Response) {
	resp.Status = http.StatusNotFound
}

// typedRule is used for patterns with no parameter tokens — its handler's
// own signature fixes its (necessarily empty) parameter-kind list, so
// there is no pattern to cross-check it against. Catch-all rules share
// this shape with zero parameters by construction.
type typedRule struct {
	ruleBase
	binder *binder
}

func (r *typedRule) Validate() error {
	if r.handler == nil {
		return ErrHandlerMissing
	}
	b, err := buildBinder(r.handler, nil)
	if err != nil {
		return err
	}
	r.binder = b
	return nil
}

func (r *typedRule) Invoke(req *Request, resp *Response, bp BoundParams) {
	r.binder.invoke(req, resp, bp)
}

func (r *typedRule) InvokeUpgrade(_ *Request, resp *Response, _ Socket) {
	defaultInvokeUpgrade(resp)
}

// dynamicRule is used for patterns that do carry parameter tokens: the
// handler's inferred parameter kinds are checked against the pattern's
// own token kinds at Validate() time, in order, and any mismatch is a
// fatal build-time error.
type dynamicRule struct {
	ruleBase
	binder *binder
}

func (r *dynamicRule) Validate() error {
	if r.handler == nil {
		return ErrHandlerMissing
	}
	kinds, err := pattern.Kinds(r.pattern)
	if err != nil {
		return err
	}
	b, err := buildBinder(r.handler, kinds)
	if err != nil {
		return err
	}
	r.binder = b
	return nil
}

func (r *dynamicRule) Invoke(req *Request, resp *Response, bp BoundParams) {
	r.binder.invoke(req, resp, bp)
}

func (r *dynamicRule) InvokeUpgrade(_ *Request, resp *Response, _ Socket) {
	defaultInvokeUpgrade(resp)
}

// webSocketRule holds the upgrade-only handler set; a plain (non-upgrade)
// request against it always 404s, since a WebSocket endpoint has nothing
// sensible to return over ordinary request/response.
type webSocketRule struct {
	ruleBase
	handlers WebSocketHandlers
}

func (r *webSocketRule) Validate() error {
	return nil
}

func (r *webSocketRule) Invoke(_ *Request, resp *Response, _ BoundParams) {
	resp.Status = http.StatusNotFound
}

func (r *webSocketRule) InvokeUpgrade(req *Request, resp *Response, sock Socket) {
	if r.handlers.OnAccept != nil && !r.handlers.OnAccept(req) {
		resp.Status = http.StatusForbidden
		return
	}
	conn := newWSConn(sock, r.handlers)
	if r.handlers.OnOpen != nil {
		r.handlers.OnOpen(conn)
	}
}

// catchAllRule has no pattern; it receives any request that would
// otherwise 404. It accepts the same four handler shapes as typedRule,
// always with zero parameters.
type catchAllRule struct {
	ruleBase
	binder *binder
}

func (r *catchAllRule) Validate() error {
	if r.handler == nil {
		return ErrHandlerMissing
	}
	b, err := buildBinder(r.handler, nil)
	if err != nil {
		return err
	}
	r.binder = b
	return nil
}

func (r *catchAllRule) Invoke(req *Request, resp *Response, bp BoundParams) {
	r.binder.invoke(req, resp, bp)
}

func (r *catchAllRule) InvokeUpgrade(_ *Request, resp *Response, _ Socket) {
	defaultInvokeUpgrade(resp)
}
