package shell

import (
	"fmt"
	"strings"
)

// Marker lines delimiting the tool-owned region of a profile file. Every
// install, detect and remove operation uses these exact constants; there
// is at most one region per file.
const (
	BlockStart = "# >>> devflow safe-rm >>>"
	BlockEnd   = "# <<< devflow safe-rm <<<"
)

// GenerateBlock returns the marker-delimited profile block that redirects
// rm to the trash command for the given shell and platform. The second
// return value is false when the shell has no supported block; that is an
// ordinary outcome, not an error.
func GenerateBlock(shellType Type, goos, trashCmd string) (string, bool) {
	var body string

	switch shellType {
	case Bash, Zsh:
		body = posixBlock(trashCmd)
	case Fish:
		body = fishBlock(trashCmd)
	case PowerShell:
		if goos == "windows" {
			body = powershellRecycleBlock()
		} else {
			body = powershellTrashBlock(trashCmd)
		}
	default:
		return "", false
	}

	return BlockStart + "\n" + body + "\n" + BlockEnd, true
}

// posixBlock intercepts rm with a shell function. Setting
// DEVFLOW_SAFE_RM=0 falls through to the real rm.
func posixBlock(trashCmd string) string {
	return fmt.Sprintf(`rm() {
    if [ "${DEVFLOW_SAFE_RM:-1}" = "0" ]; then
        command rm "$@"
        return
    fi
    %s "$@"
}`, trashCmd)
}

func fishBlock(trashCmd string) string {
	return fmt.Sprintf(`function rm --description "Safe delete via trash"
    if test "$DEVFLOW_SAFE_RM" = "0"
        command rm $argv
        return
    end
    %s $argv
end`, trashCmd)
}

// powershellRecycleBlock uses the .NET recycle-bin API directly, so it
// needs no external trash command on Windows. The built-in rm alias is
// removed first so the function is not shadowed.
func powershellRecycleBlock() string {
	return strings.TrimSpace(`
Remove-Item Alias:rm -Force -ErrorAction SilentlyContinue
function rm {
    if ($env:DEVFLOW_SAFE_RM -eq "0") {
        Remove-Item @args
        return
    }
    Add-Type -AssemblyName Microsoft.VisualBasic
    foreach ($target in $args) {
        $item = Get-Item $target
        if ($item.PSIsContainer) {
            [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteDirectory($item.FullName, 'OnlyErrorDialogs', 'SendToRecycleBin')
        } else {
            [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile($item.FullName, 'OnlyErrorDialogs', 'SendToRecycleBin')
        }
    }
}`)
}

func powershellTrashBlock(trashCmd string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Remove-Item Alias:rm -Force -ErrorAction SilentlyContinue
function rm {
    if ($env:DEVFLOW_SAFE_RM -eq "0") {
        Remove-Item @args
        return
    }
    & %s @args
}`, trashCmd))
}
