package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/font/fontloader"
	"github.com/npillmayer/mathfont/core/font/hostenv"
	"github.com/npillmayer/mathfont/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load")
	scale := flag.String("scale", "100", "Font scale factor")
	ppp := flag.String("ppp", "1.0", "Pixels per point")
	register := flag.Bool("register", true, "Register fonts with graphics environment")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":            "go",
		"trace.tyse.fonts":           *tlevel,
		"trace.tyse.resources":       *tlevel,
		fontloader.KeyScaleFactor:    *scale,
		fontloader.KeyPixelsPerPoint: *ppp,
		fontloader.KeyRegister:       strconv.FormatBool(*register),
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the font loader CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	c, err := fontloader.ConfigFrom(conf)
	if err != nil {
		core.UserError(err)
		os.Exit(2)
	}
	env := hostenv.NewLocal(hostenv.WithDPI(c.DPI))
	intp := &Intp{
		env: env,
		loader: fontloader.NewLoaderFromConfig(env, c,
			fontloader.WithDiagnostics(func(err error) {
				pterm.Warning.Println(core.UserMessage(err))
			})),
	}
	//
	// set up REPL
	repl, err := readline.New("font > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	//
	// load font provided by flag
	if *fontname != "" {
		if err := intp.load(*fontname); err != nil {
			core.UserError(err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	env    *hostenv.Local
	loader *fontloader.Loader
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			core.UserError(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a single command of the interpreter.
type Op struct {
	code int
	arg  string
	opt  string
}

const (
	QUIT int = iota
	HELP
	LOAD
	ORIGINS
	FONTS
	REGISTER
	LOOKUP
)

func parseCommand(line string) (Op, error) {
	c := strings.Split(strings.TrimSpace(line), ":") // e.g.  "load:fonts/cmr10.ttf" or "lookup:cmr10:12"
	tracer().Debugf("parse command = %v", c)
	op := Op{arg: getOptArg(c, 1), opt: getOptArg(c, 2)}
	switch strings.ToLower(c[0]) {
	case "quit", "exit":
		op.code = QUIT
	case "load":
		op.code = LOAD
		if op.arg == "" {
			return op, errors.New("load requires a font file, e.g. load:fonts/cmr10.ttf")
		}
	case "origins", "list":
		op.code = ORIGINS
	case "fonts", "registered":
		op.code = FONTS
	case "register":
		op.code = REGISTER
		if _, err := strconv.ParseBool(op.arg); err != nil {
			return op, fmt.Errorf("register requires true or false, is %q", op.arg)
		}
	case "lookup":
		op.code = LOOKUP
		if op.arg == "" {
			return op, errors.New("lookup requires a font name, e.g. lookup:go_regular:12")
		}
	default:
		op.code = HELP
	}
	return op, nil
}

func (intp *Intp) execute(op Op) (bool, error) {
	switch op.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case LOAD:
		return false, intp.load(op.arg)
	case ORIGINS:
		data := pterm.TableData{{"#", "Font", "Size", "Origin"}}
		for i, o := range intp.loader.Provenance().Origins() {
			data = append(data, []string{
				strconv.Itoa(i),
				o.TypeCase.ScalableFontParent().Fontname,
				fmt.Sprintf("%.2fpt", o.TypeCase.PtSize()),
				o.Name,
			})
		}
		return false, pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	case FONTS:
		names := intp.env.Registry().FontsWithPrefix(op.arg)
		pterm.Printfln("%d registered font(s): %v", len(names), names)
	case REGISTER:
		b, _ := strconv.ParseBool(op.arg)
		intp.loader.Policy().SetShouldRegisterFonts(b)
		pterm.Printfln("font registration switched to %v", b)
	case LOOKUP:
		size := intp.loader.Size()
		if op.opt != "" {
			s, err := strconv.ParseFloat(op.opt, 32)
			if err != nil {
				return false, core.WrapError(err, core.EINVALID, "font size not numeric: %v", op.opt)
			}
			size = s
		}
		tc, err := intp.env.Registry().TypeCase(op.arg, float32(size))
		if err != nil {
			pterm.Warning.Printfln("%v, using %s", err, tc)
			return false, nil
		}
		pterm.Printfln("found %s", tc)
	}
	return false, nil
}

func (intp *Intp) load(path string) error {
	tc, err := intp.loader.Load(resources.FilePath(path))
	if err != nil {
		return err
	}
	if tc == nil {
		pterm.Error.Printfln("no font loaded from %s", path)
		return nil
	}
	pterm.Success.Printfln("loaded %s from %s", tc, path)
	return nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	load:<file>           load a font file, scale it and register it
	origins               list loaded fonts together with their origin
	fonts[:<prefix>]      list fonts registered with the graphics environment
	register:<bool>       switch font registration on or off
	lookup:<name>[:<pt>]  find a registered font by normalized name
	quit                  leave the CLI
	`)
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}
