// Package deps checks that the external programs backline launches are
// installed. Results feed `backline config validate`.
package deps
