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
	"errors"

	"github.com/lattice-http/router/pattern"
)

var (
	// ErrPatternConflict indicates the exact same pattern was registered
	// twice for the same HTTP method.
	ErrPatternConflict = errors.New("pattern already registered for this method")

	// ErrHandlerMissing indicates a rule was validated without a handler
	// attached.
	ErrHandlerMissing = errors.New("rule has no handler")

	// ErrHandlerArityMismatch indicates a dynamic rule's handler
	// parameter kinds/order disagree with its pattern's parameter
	// tokens.
	ErrHandlerArityMismatch = errors.New("handler parameters do not match pattern parameters")

	// ErrTrieCorruption indicates a rule id was found out of range
	// during dispatch. This is a programming error, not a request
	// error, and is never expected in a correctly built router.
	ErrTrieCorruption = errors.New("trie corruption: rule id out of range")

	// ErrUnknownToken indicates an unrecognized or unterminated "<...>"
	// token appeared in a pattern; an alias of the pattern package's own
	// sentinel so callers can errors.Is against it without importing
	// pattern directly.
	ErrUnknownToken = pattern.ErrUnrecognizedToken

	// ErrInvalidPattern indicates a pattern is empty or otherwise
	// malformed.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrRouterFrozen indicates a registration call was made after the
	// router started serving requests.
	ErrRouterFrozen = errors.New("router is frozen: no further registration permitted")

	// ErrUnsupportedHandlerSignature indicates the binder could not make
	// sense of a handler's reflect signature.
	ErrUnsupportedHandlerSignature = errors.New("unsupported handler signature")
)
