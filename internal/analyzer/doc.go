// Package analyzer derives ProjectSignals from a local CMS project tree.
//
// The analysis is heuristic by design: package references are pulled out of
// .csproj and packages.config files with regular expressions, and features,
// architecture patterns and a business-domain guess come from substring
// detectors over source and view files. There is no compiler front end and
// no claim of completeness; sparse signals on an unusual tree are normal
// and not an error.
//
// The only errors Analyze returns are input-validation failures (missing,
// unreadable, or non-project paths), matching the system's one
// caller-visible failure mode.
package analyzer
