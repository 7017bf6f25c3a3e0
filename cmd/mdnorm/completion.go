package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	mdnorm "github.com/alnah/go-mdnorm"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// markdownGlob matches the files accepted as positional arguments.
const markdownGlob = "*.md,*.markdown,*.mdown,*.mkd"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
func flagCompletionMeta() map[string]completionMeta {
	return map[string]completionMeta{
		"format":          {Values: []string{"markdown", "html", "term"}},
		"term-style":      {Values: mdnorm.TermStyles()},
		"highlight-style": {Values: mdnorm.HighlightStyles()},
		"config":          {FileGlob: "*.yaml,*.yml"},
		"lexicon":         {FileGlob: "*.yaml,*.yml"},
		"output":          {IsDir: true},
		"asset-path":      {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	meta := flagCompletionMeta()
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the same FlagSets the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "normalize",
			Desc:        "Repair markdown written by a language model",
			Flags:       extractFlagsFromFlagSet(newNormalizeFlagSet(&normalizeFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:        "check",
			Desc:        "Report structural issues",
			Flags:       extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:        "stream",
			Desc:        "Replay a document as a token stream",
			Flags:       extractFlagsFromFlagSet(newStreamFlagSet(&streamFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:        "render",
			Desc:        "Normalize and render as markdown, HTML, or terminal text",
			Flags:       extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:  "lexicon",
			Desc:  "Print the effective lexicon as YAML",
			Flags: extractFlagsFromFlagSet(newLexiconFlagSet(&lexiconCmdFlags{})),
		},
		{
			Name:  "doctor",
			Desc:  "Check configuration, lexicon, and assets",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	var b strings.Builder

	switch shell {
	case ShellBash:
		generateBash(&b, cmds)
	case ShellZsh:
		generateZsh(&b, cmds)
	case ShellFish:
		generateFish(&b, cmds)
	case ShellPowerShell:
		generatePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// commandNames returns the command names separated by spaces.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns every spelling of the command's flags.
func flagWords(c commandDef) string {
	var words []string
	for _, f := range c.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.md,*.markdown" into []string{"md", "markdown"}.
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return exts
}

// quoteSingle escapes s for a single-quoted shell string.
func quoteSingle(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func generateBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for mdnorm\n")
	b.WriteString("_mdnorm_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n            return ;;\n",
					pattern, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\"))\n            return ;;\n",
					pattern, strings.Join(globExtensions(f.FileGlob), "|"))
			case flagDir:
				fmt.Fprintf(b, "        %s)\n            COMPREPLY=($(compgen -d -- \"${cur}\"))\n            return ;;\n", pattern)
			}
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(b, "        %s)\n", c.Name)
		fmt.Fprintf(b, "            if [[ \"${cur}\" == -* ]]; then\n                COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", flagWords(c))
		if c.TakesFiles {
			fmt.Fprintf(b, "            else\n                COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		}
		b.WriteString("            fi ;;\n")
	}
	b.WriteString("        completion)\n            COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"${cur}\")) ;;\n")
	fmt.Fprintf(b, "        help)\n            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")) ;;\n", commandNames(cmds))
	b.WriteString("    esac\n}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _mdnorm_completions mdnorm\n")
}

func generateZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef mdnorm\n\n")
	b.WriteString("_mdnorm() {\n")
	b.WriteString("    local -a commands\n    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, quoteSingle(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n        _describe 'command' commands\n        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(b, "        %s)\n            _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(b, "                %s \\\n", zshFlagSpec(f))
		}
		if c.TakesFiles {
			fmt.Fprintf(b, "                '*:input:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		} else {
			b.WriteString("                && return\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        completion)\n            _values 'shell' bash zsh fish powershell\n            ;;\n")
	b.WriteString("        help)\n            _describe 'command' commands\n            ;;\n")
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _mdnorm mdnorm\n")
}

// zshFlagSpec builds a quoted _arguments spec such as
// '(-o --output)'{-o,--output}'[output file]:output:_files -/'.
func zshFlagSpec(f flagDef) string {
	desc := quoteSingle(strings.NewReplacer("[", "(", "]", ")").Replace(f.Desc))

	action := ""
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":%s:_files -g \"*.(%s)\"", f.Long, strings.Join(globExtensions(f.FileGlob), "|"))
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	default:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

func generateFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for mdnorm\n\n")
	b.WriteString("function __fish_mdnorm_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_mdnorm_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")

	b.WriteString("complete -c mdnorm -f\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c mdnorm -n __fish_mdnorm_needs_command -a %s -d '%s'\n", c.Name, quoteSingle(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_mdnorm_using_command %s'", c.Name)
		if c.TakesFiles {
			fmt.Fprintf(b, "complete -c mdnorm -n %s -F\n", cond)
		}
		for _, f := range c.Flags {
			fmt.Fprintf(b, "complete -c mdnorm -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile, flagDir:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(b, " -d '%s'\n", quoteSingle(f.Desc))
		}
	}
	b.WriteString("complete -c mdnorm -n '__fish_mdnorm_using_command completion' -x -a 'bash zsh fish powershell'\n")
}

func generatePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# PowerShell completion for mdnorm\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName mdnorm -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s' = '%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", "''"))
	}
	b.WriteString("    }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(b, "        '%s' = @('%s')\n", c.Name, strings.ReplaceAll(flagWords(c), " ", "', '"))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    if ($elements.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n        return\n    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    if ($wordToComplete.StartsWith('-') -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n    }\n")
	b.WriteString("}\n")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdnorm completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdnorm completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdnorm completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdnorm completion fish > ~/.config/fish/completions/mdnorm.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    mdnorm completion powershell | Out-String | Invoke-Expression")
}
