// Package sanpi implements providers.Source for the gamesanpi.com landing
// page. Articles are extracted with a token-level block scan and, when that
// finds nothing, a lower-confidence DOM fallback. Illustrations are found
// by probing the site's predictable asset paths.
package sanpi
