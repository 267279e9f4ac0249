// Package paths resolves the filesystem locations mongo-toolkit reads from.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// On Linux the configuration file lives at ~/.config/mongo-toolkit/config.yaml;
// macOS and Windows use their platform equivalents.
//
//	paths.ConfigDir()  // <ConfigHome>/mongo-toolkit
//	paths.ConfigFile() // <ConfigHome>/mongo-toolkit/config.yaml
//
// User-supplied paths such as --options-file and --log-file may start with
// "~/"; [ExpandHome] resolves them against the home directory.
package paths
