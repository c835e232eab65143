// Package all registers every built-in source backend. Import it for its
// side effects:
//
//	import _ "github.com/alexanderjulianmartinez/upload-watch/internal/source/all"
package all

import (
	_ "github.com/alexanderjulianmartinez/upload-watch/internal/source/mysql"
	_ "github.com/alexanderjulianmartinez/upload-watch/internal/source/postgres"
	_ "github.com/alexanderjulianmartinez/upload-watch/internal/source/sqlite"
)
