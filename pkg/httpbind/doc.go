// Package httpbind connects widgets to plain HTML form posts.
//
// Rendered widgets submit their values under their field names, and every
// button a widget renders submits "_action=<widget id>:<verb>[:<arg>]". Apply
// turns one request into widget events: a change for every submitted value
// that differs from the bound one, a file selection for every uploaded file,
// then the clicked action. Handler serves a whole formdef.Form with a GET/POST
// round trip.
package httpbind
