package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zxfonline/ultrafast/log"
	"github.com/zxfonline/ultrafast/luamod"
	"github.com/zxfonline/ultrafast/random"
)

func (a *app) drawCmd() *cobra.Command {
	var (
		count int
		hex   bool
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print draws, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator()
			if err != nil {
				return err
			}
			format := "%d\n"
			if hex {
				format = fmt.Sprintf("%%0%dx\n", g.Width()/4)
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			for i := 0; i < count; i++ {
				fmt.Fprintf(w, format, g.Next())
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of draws")
	cmd.Flags().BoolVar(&hex, "hex", false, "print zero padded hex")
	return cmd
}

func (a *app) dumpCmd() *cobra.Command {
	var (
		size  int64
		force bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the raw byte stream, e.g. for statistical test suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) && !force {
				return fmt.Errorf("refusing to write binary data to a terminal, use --force")
			}
			g, err := a.generator()
			if err != nil {
				return err
			}
			rd := random.NewReader(g)
			if size <= 0 {
				_, err = io.Copy(out, rd)
				return err
			}
			_, err = io.CopyN(out, rd, size)
			return err
		},
	}
	cmd.Flags().Int64Var(&size, "bytes", 0, "number of bytes, 0 streams until the output closes")
	cmd.Flags().BoolVar(&force, "force", false, "write to a terminal anyway")
	return cmd
}

func (a *app) scriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a lua script with the ultrafast module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer log.PrintPanicStack(&err)
			L := luamod.NewState(a.cfg)
			defer L.Close()
			log.Debugf("run lua script %s", args[0])
			return L.DoFile(args[0])
		},
	}
}
