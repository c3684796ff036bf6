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

// Option configures a Router at construction time.
type Option func(*Router)

// WithDiagnostics registers a DiagnosticHandler that receives one event
// per dispatched request. Nil disables diagnostics (the default).
func WithDiagnostics(h DiagnosticHandler) Option {
	return func(rt *Router) { rt.diagnostics = h }
}

// WithObservabilityRecorder registers a metrics/tracing recorder. See
// router/metrics and router/tracing for ready-made implementations.
func WithObservabilityRecorder(rec ObservabilityRecorder) Option {
	return func(rt *Router) { rt.observability = rec }
}
