// Package models defines the domain entities persisted by incense.
//
//   - [Session] : one completed countdown with its duration and completion time
//   - [DailyQuote] : the quote cached for a single calendar day
//   - [Summary] : aggregate reads over the session log
//
// Entities are plain values. They are serialized as JSON into the string-keyed store
// (see repositories.Store) using the same field names as the browser build of the app,
// so a localStorage export can be read back without conversion.
package models
