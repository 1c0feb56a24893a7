// print licenses, duh //
package main

import (
	"fmt"
)

func printLicenses() {
	fmt.Print(`
*****************************************
* 3rd-party software used by book_order *
*****************************************

github.com/cention-sany/utf7,https://github.com/cention-sany/utf7/blob/HEAD/LICENSE,BSD-3-Clause
github.com/gogs/chardet,https://github.com/gogs/chardet/blob/HEAD/LICENSE,MIT
github.com/h2non/filetype,https://github.com/h2non/filetype/blob/HEAD/LICENSE,MIT
github.com/jaytaylor/html2text,https://github.com/jaytaylor/html2text/blob/HEAD/LICENSE,MIT
github.com/jhillyerd/enmime/v2,https://github.com/jhillyerd/enmime/blob/HEAD/LICENSE,MIT
github.com/mattn/go-runewidth,https://github.com/mattn/go-runewidth/blob/HEAD/LICENSE,MIT
github.com/mattn/go-sqlite3,https://github.com/mattn/go-sqlite3/blob/HEAD/LICENSE,MIT
github.com/olekukonko/tablewriter,https://github.com/olekukonko/tablewriter/blob/HEAD/LICENSE.md,MIT
github.com/pkg/errors,https://github.com/pkg/errors/blob/HEAD/LICENSE,BSD-2-Clause
github.com/rivo/uniseg,https://github.com/rivo/uniseg/blob/HEAD/LICENSE.txt,MIT
github.com/ssor/bom,https://github.com/ssor/bom/blob/HEAD/LICENSE,MIT
golang.org/x/net/html,https://cs.opensource.google/go/x/net/+/HEAD:LICENSE,BSD-3-Clause
golang.org/x/text,https://cs.opensource.google/go/x/text/+/HEAD:LICENSE,BSD-3-Clause
gopkg.in/alexcesaro/quotedprintable.v3,https://github.com/alexcesaro/quotedprintable/blob/HEAD/LICENSE,MIT
gopkg.in/gomail.v2,https://github.com/go-gomail/gomail/blob/HEAD/LICENSE,MIT
gopkg.in/yaml.v2,https://github.com/go-yaml/yaml/blob/HEAD/LICENSE,Apache-2.0
`)
}
