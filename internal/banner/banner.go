// Package banner renders the CLI start-up banner.
package banner

import "fmt"

const art = `
                          _
 _ __ ___   __ ___  _____ _ __ | |_
| '_ ` + "`" + ` _ \ / _` + "`" + ` \ \/ / _ \ '_ \| __|
| | | | | | (_| |>  <  __/ | | | |_
|_| |_| |_|\__,_/_/\_\___|_| |_|\__|
`

// Banner returns the banner text followed by the version.
func Banner(version string) string {
	return fmt.Sprintf("%s  log-linear scoring toolkit %s\n\n", art, version)
}
