// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("sigma")

// ConfigureLogging applies c to the commonlog backend. A backend must be
// linked in by the program, e.g. with
//
//	import _ "github.com/tliron/commonlog/simple"
//
// Verbosity 0 keeps only errors; an empty path logs to stderr.
func ConfigureLogging(c LogConfig) {
	var path *string
	if c.Path != "" {
		path = &c.Path
	}
	commonlog.Configure(c.Verbosity, path)
}
