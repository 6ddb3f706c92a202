// Package ballot reads questionnaire exports into a response matrix and
// writes group assignments back out as CSV.
//
// Input layout: a header row, then one row per participant. The first column
// is the participant id; every further column is one question whose cells
// hold answer tokens:
//
//	participant_id,q1,q2,q3
//	p1,yes,no,
//	p2,no,yes,yes
//
// Tokens are matched case-insensitively after trimming. With DefaultEncoding,
// "yes" is 1, "no" is 0, an empty cell is 0.5, and the numbers 0, 0.5 and 1
// are accepted verbatim. Anything else is ErrUnknownResponse unless the
// encoding is Lenient, in which case it counts as missing.
package ballot
