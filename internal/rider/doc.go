// Package rider assembles and delivers the printable technical rider.
//
// Assemble is pure: it turns an equipment snapshot, its channel list and the
// rendered stage plot into a four page A4 HTML document (cover, stage plot,
// input list, equipment list). Deliverers hand that document to the file
// system or the platform browser for printing, and Exporter runs the whole
// flow, collapsing any failure into ErrRiderFailed.
package rider
