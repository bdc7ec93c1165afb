// Package announce carries short status messages meant for screen readers,
// such as "Form has been reset" or "3 doctors found".
//
// Controllers depend on the Announcer interface only. A nil announcer is
// replaced with Nop through OrNop, so a missing collaborator never breaks a
// feature. Implementations:
//
//   - Logger writes messages to slog;
//   - Collector keeps them in memory (per HTTP request, or in tests);
//   - LiveRegion shows the latest message and clears it after DefaultTTL;
//   - Multi fans a message out to several announcers.
package announce
