// Package models defines the core domain models for tipsplit.
//
// # Models
//
//   - Preset: a tip percentage offered as a one-click choice. The preset set
//     is deployment configuration; it comes from a preset server, the config
//     file, or DefaultPercents.
//   - Operator: the account allowed to replace the preset set on a preset
//     server.
//
// The values a user types (bill, people, custom tip) are not models: they
// live on the input surface and are never stored.
package models
