// Package models defines the core domain models for the task list service.
//
// # Models
//
//   - User: a registered account; owns zero or more tasks
//   - Task: a single to-do item owned by exactly one user
//
// # Design Principles
//
//  1. Relationships are expressed with ID strings, never pointers
//  2. Ownership is checked by the service layer, not by database joins
//  3. Validation is a pure function over field values and does not depend on
//     any storage driver (see ValidateTask and ValidateRegistration)
package models
