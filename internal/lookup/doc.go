// Package lookup queries public music catalogs while a band fills in its
// song library. Song search uses the iTunes search API and tempo comes from
// Deezer's track detail.
//
// Lookups are best effort: any transport, status or decoding failure yields
// an empty result and a debug log line. Callers never see an error and
// nothing is retried.
package lookup
