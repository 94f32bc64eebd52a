package toolkit

import "github.com/mirrorops/drcmd/internal/command"

// Catalog of common administrative commands, re-exported for SDK consumers.
type (
	Awk      = command.Awk
	Bash     = command.Bash
	Cat      = command.Cat
	Df       = command.Df
	Echo     = command.Echo
	Grep     = command.Grep
	Hostname = command.Hostname
	Kill     = command.Kill
	Ls       = command.Ls
	Mkdir    = command.Mkdir
	Ps       = command.Ps
	Rm       = command.Rm
	Ssh      = command.Ssh
	Sudo     = command.Sudo
	Tar      = command.Tar
	Xargs    = command.Xargs
)

// NewAwk returns an awk command builder.
func NewAwk() *Awk { return command.NewAwk() }

// NewBash returns a bash command builder.
func NewBash() *Bash { return command.NewBash() }

// NewCat returns a cat command builder.
func NewCat() *Cat { return command.NewCat() }

// NewDf returns a df command builder.
func NewDf() *Df { return command.NewDf() }

// NewEcho returns an echo command builder.
func NewEcho() *Echo { return command.NewEcho() }

// NewGrep returns a grep command builder.
func NewGrep() *Grep { return command.NewGrep() }

// NewHostname returns a hostname command builder.
func NewHostname() *Hostname { return command.NewHostname() }

// NewKill returns a kill command builder.
func NewKill() *Kill { return command.NewKill() }

// NewLs returns an ls command builder for the given directory.
func NewLs(dir string) *Ls { return command.NewLs(dir) }

// NewMkdir returns a mkdir command builder for the given directory.
func NewMkdir(dir string) *Mkdir { return command.NewMkdir(dir) }

// NewPs returns a ps command builder.
func NewPs() *Ps { return command.NewPs() }

// NewRm returns an rm command builder.
func NewRm() *Rm { return command.NewRm() }

// NewSsh returns an ssh command builder.
func NewSsh() *Ssh { return command.NewSsh() }

// NewSudo returns a sudo command builder.
func NewSudo() *Sudo { return command.NewSudo() }

// NewTar returns a tar command builder.
func NewTar() *Tar { return command.NewTar() }

// NewXargs returns an xargs command builder.
func NewXargs() *Xargs { return command.NewXargs() }
