package command

import "strconv"

// Catalog of common Linux administrative commands. Each entry is a builder
// pre-seeded with its executable path, exposing only the options the
// disaster-recovery workflows need.

// Awk builds an `awk` command.
type Awk struct{ *Builder }

// NewAwk returns an awk command builder.
func NewAwk() *Awk { return &Awk{New("/usr/bin/awk")} }

// Pattern adds an awk program.
func (c *Awk) Pattern(pattern string) *Awk { c.Add(pattern); return c }

// Bash builds a `bash` command.
type Bash struct{ *Builder }

// NewBash returns a bash command builder.
func NewBash() *Bash { return &Bash{New("/usr/bin/bash")} }

// Script adds an inline script to run with `-c`.
func (c *Bash) Script(script string) *Bash { c.Add("-c '" + script + "'"); return c }

// Cat builds a `cat` command.
type Cat struct{ *Builder }

// NewCat returns a cat command builder.
func NewCat() *Cat { return &Cat{New("/usr/bin/cat")} }

// WriteTo writes literal content into a file through a heredoc.
func (c *Cat) WriteTo(file, content string) *Cat {
	c.Add("<<EOF > " + file + "\n" + content + "EOF")
	return c
}

// Df builds a `df` command.
type Df struct{ *Builder }

// NewDf returns a df command builder.
func NewDf() *Df { return &Df{New("/bin/df")} }

// HumanReadable prints sizes in human readable format.
func (c *Df) HumanReadable() *Df { c.Add("-h"); return c }

// Echo builds an `echo` command.
type Echo struct{ *Builder }

// NewEcho returns an echo command builder.
func NewEcho() *Echo { return &Echo{New("/usr/bin/echo")} }

// Content adds the text to echo.
func (c *Echo) Content(content string) *Echo { c.Add(content); return c }

// Grep builds a `grep` command.
type Grep struct{ *Builder }

// NewGrep returns a grep command builder.
func NewGrep() *Grep { return &Grep{New("/usr/bin/grep")} }

// IgnoreCase matches case-insensitively.
func (c *Grep) IgnoreCase() *Grep { c.Add("--ignore-case"); return c }

// InvertMatch selects non-matching lines.
func (c *Grep) InvertMatch(match string) *Grep { c.AddPair("--invert-match", match); return c }

// ExcludeSelf drops the grep process itself from piped `ps` output.
func (c *Grep) ExcludeSelf() *Grep { return c.InvertMatch("grep") }

// Regex matches with a Perl-compatible regular expression.
func (c *Grep) Regex(regex string) *Grep { c.AddPair("--perl-regexp", regex); return c }

// Hostname builds a `hostname` command.
type Hostname struct{ *Builder }

// NewHostname returns a hostname command builder.
func NewHostname() *Hostname { return &Hostname{New("/usr/bin/hostname")} }

// Name sets the host name.
func (c *Hostname) Name(name string) *Hostname { c.Add(name); return c }

// Kill builds a `kill` command.
type Kill struct{ *Builder }

const sigkill = 9

// NewKill returns a kill command builder.
func NewKill() *Kill { return &Kill{New("/usr/bin/kill")} }

// Signal selects the signal to send.
func (c *Kill) Signal(signal int) *Kill { c.Add("-" + strconv.Itoa(signal)); return c }

// Kill sends SIGKILL.
func (c *Kill) Kill() *Kill { return c.Signal(sigkill) }

// Ls builds an `ls` command.
type Ls struct{ *Builder }

// NewLs returns an ls command builder for the given directory.
func NewLs(dir string) *Ls { return &Ls{New("/usr/bin/ls", dir)} }

// Mkdir builds a `mkdir` command.
type Mkdir struct{ *Builder }

// NewMkdir returns a mkdir command builder for the given directory.
func NewMkdir(dir string) *Mkdir { return &Mkdir{New("/usr/bin/mkdir", dir)} }

// Ps builds a `ps` command.
type Ps struct{ *Builder }

// NewPs returns a ps command builder.
func NewPs() *Ps { return &Ps{New("/usr/bin/ps")} }

// All selects all processes.
func (c *Ps) All() *Ps { c.Add("-A"); return c }

// FullFormat prints the full format listing.
func (c *Ps) FullFormat() *Ps { c.Add("-f"); return c }

// Rm builds an `rm` command.
type Rm struct{ *Builder }

// NewRm returns an rm command builder.
func NewRm() *Rm { return &Rm{New("/usr/bin/rm")} }

// Force ignores nonexistent files.
func (c *Rm) Force() *Rm { c.Add("-f"); return c }

// File removes a single file.
func (c *Rm) File(file string) *Rm { c.Add(file); return c }

// Folder removes a directory recursively.
func (c *Rm) Folder(folder string) *Rm { c.AddPair("-r", folder); return c }

// Ssh builds an `ssh` command.
type Ssh struct{ *Builder }

// NewSsh returns an ssh command builder.
func NewSsh() *Ssh { return &Ssh{New("/usr/bin/ssh")} }

// Tty forces pseudo-terminal allocation.
func (c *Ssh) Tty() *Ssh { c.Add("-tt"); return c }

// NullHostFile redirects the known-hosts file to /dev/null.
func (c *Ssh) NullHostFile() *Ssh { c.AddWithEqual("-oUserKnownHostsFile", "/dev/null"); return c }

// NoKeyChecking disables strict host key verification.
func (c *Ssh) NoKeyChecking() *Ssh { c.AddWithEqual("-oStrictHostKeyChecking", "no"); return c }

// ConnectTimeout bounds connection establishment, in seconds.
func (c *Ssh) ConnectTimeout(seconds int64) *Ssh {
	c.AddWithEqual("-oConnectTimeout", strconv.FormatInt(seconds, 10))
	return c
}

// Identity points at the private key identity file.
func (c *Ssh) Identity(file string) *Ssh { c.AddPair("-i", file); return c }

// Host adds the login target host.
func (c *Ssh) Host(host string) *Ssh { c.Add(host); return c }

// UserHost adds the login target as user@host.
func (c *Ssh) UserHost(user, host string) *Ssh { c.Add(user + "@" + host); return c }

// Remote sets the command to run on the remote side.
func (c *Ssh) Remote(cmd Command) *Ssh { c.Add(cmd.AsString()); return c }

// Sudo builds a `sudo` command.
type Sudo struct{ *Builder }

// NewSudo returns a sudo command builder.
func NewSudo() *Sudo { return &Sudo{New("/usr/bin/sudo")} }

// Wrap sets the command to run with elevated privileges.
func (c *Sudo) Wrap(cmd Command) *Sudo { c.Add(cmd.AsString()); return c }

// Tar builds a `tar` command.
type Tar struct{ *Builder }

// NewTar returns a tar command builder.
func NewTar() *Tar { return &Tar{New("/usr/bin/tar")} }

// Compress archives file into the gzip-compressed target.
func (c *Tar) Compress(target, file string) *Tar { c.AddPair("cvzf", target).Add(file); return c }

// Extract unpacks the gzip-compressed file into dir.
func (c *Tar) Extract(file, dir string) *Tar {
	c.AddPair("xvzf", file).AddWithEqual("--directory", dir)
	return c
}

// Xargs builds an `xargs` command.
type Xargs struct{ *Builder }

// NewXargs returns an xargs command builder.
func NewXargs() *Xargs { return &Xargs{New("/usr/bin/xargs")} }

// Run sets the command xargs feeds its input to.
func (c *Xargs) Run(cmd Command) *Xargs { c.Add(cmd.AsString()); return c }
