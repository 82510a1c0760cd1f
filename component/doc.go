// Package component defines the lifecycle interfaces for infrastructure that
// surrounds pipeline evaluation, such as telemetry providers.
//
// Components are registered with a Registry, started in registration order
// and stopped in reverse order.
//
// # Interfaces
//
//   - Component: core lifecycle interface (Start/Stop/Health)
//   - Describable: bootstrap summary descriptions
package component
