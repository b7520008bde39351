package cmd

import (
	"fmt"
	"io"
	"os"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
}

func (c *CompletionCmd) Run() error {
	return writeCompletion(os.Stdout, c.Shell)
}

// writeCompletion writes the completion script for shell to w
func writeCompletion(w io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

const bashCompletion = `# bash completion for cylinter

_cylinter_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="generate estimate demo train validate verify inspect config version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    case "${COMP_WORDS[1]}" in
        generate|config)
            case "${prev}" in
                -o|--output)
                    COMPREPLY=( $(compgen -f -X '!*.csv' -- ${cur}) )
                    return 0
                    ;;
                --histogram)
                    COMPREPLY=( $(compgen -f -X '!*.@(png|svg|pdf)' -- ${cur}) )
                    return 0
                    ;;
            esac
            if [[ ${cur} == -* ]]; then
                opts="-o --output -n --samples -p --points --gen-coeff --seed -w --workers --histogram --plain -h --help"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
            fi
            return 0
            ;;
        estimate|demo)
            if [[ ${prev} == "--plane" ]]; then
                COMPREPLY=( $(compgen -W "xy xz yz" -- ${cur}) )
                return 0
            fi
            opts="--a-position --a-axis --a-radius --a-length --b-position --b-axis --b-radius --b-length -p --points --seed --data -k --neighbors --plot --plane -h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            return 0
            ;;
        train|validate|inspect)
            if [[ ${cur} == -* ]]; then
                opts="--test-size --folds -k --neighbors --seed --parity -h --help"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -f -X '!*.csv' -- ${cur}) )
            fi
            return 0
            ;;
        verify)
            if [[ ${prev} == "--data" ]]; then
                COMPREPLY=( $(compgen -f -X '!*.csv' -- ${cur}) )
            elif [[ ${cur} == -* ]]; then
                opts="--data -k --neighbors --repeat -h --help"
                COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
            fi
            return 0
            ;;
        completion)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            return 0
            ;;
    esac
}

complete -F _cylinter_completions cylinter
`

const zshCompletion = `#compdef cylinter

_cylinter() {
    local -a commands
    commands=(
        'generate:Generate a dataset of random cylinder poses'
        'estimate:Estimate the interference of two cylinders'
        'demo:Classify sampled points of two cylinders'
        'train:Fit the surrogate and score it on a held-out split'
        'validate:Cross-validate the surrogate'
        'verify:Compare estimates and predictions for a scene'
        'inspect:Inspect a dataset'
        'config:Print the effective generation configuration'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a generate_opts
    generate_opts=(
        '(-o --output)'{-o,--output}'[Output CSV file]:output file:_files -g "*.csv"'
        '(-n --samples)'{-n,--samples}'[Number of poses]:samples:'
        '(-p --points)'{-p,--points}'[Monte-Carlo points per pose]:points:'
        '--gen-coeff[Generation ball coefficient]:coefficient:'
        '--seed[Random seed]:seed:'
        '(-w --workers)'{-w,--workers}'[Parallel workers]:workers:'
        '--histogram[Histogram image]:image file:_files -g "*.{png,svg,pdf}"'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:config file:_files -g "*.{yaml,yml}"'
    )

    local -a dataset_opts
    dataset_opts=(
        '--test-size[Held out fraction]:fraction:'
        '--folds[Number of folds]:folds:'
        '(-k --neighbors)'{-k,--neighbors}'[Neighbours of the surrogate]:k:'
        '--seed[Shuffle seed]:seed:'
        '--parity[Parity plot image]:image file:_files -g "*.{png,svg,pdf}"'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:dataset:_files -g "*.csv"'
    )

    local -a verify_opts
    verify_opts=(
        '--data[Dataset CSV]:dataset:_files -g "*.csv"'
        '(-k --neighbors)'{-k,--neighbors}'[Neighbours of the surrogate]:k:'
        '--repeat[Calls per timing measurement]:repeat:'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:scene file:_files -g "*.{yaml,yml}"'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                generate|config)
                    _arguments $generate_opts
                    ;;
                train|validate|inspect)
                    _arguments $dataset_opts
                    ;;
                verify)
                    _arguments $verify_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                *)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_cylinter
`

const fishCompletion = `# fish completion for cylinter

# Main commands
complete -c cylinter -f -n "__fish_use_subcommand" -a "generate" -d "Generate a dataset of random cylinder poses"
complete -c cylinter -f -n "__fish_use_subcommand" -a "estimate" -d "Estimate the interference of two cylinders"
complete -c cylinter -f -n "__fish_use_subcommand" -a "demo" -d "Classify sampled points of two cylinders"
complete -c cylinter -f -n "__fish_use_subcommand" -a "train" -d "Fit the surrogate and score it"
complete -c cylinter -f -n "__fish_use_subcommand" -a "validate" -d "Cross-validate the surrogate"
complete -c cylinter -f -n "__fish_use_subcommand" -a "verify" -d "Compare estimates and predictions for a scene"
complete -c cylinter -f -n "__fish_use_subcommand" -a "inspect" -d "Inspect a dataset"
complete -c cylinter -f -n "__fish_use_subcommand" -a "config" -d "Print the effective generation configuration"
complete -c cylinter -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c cylinter -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# generate command options
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -s o -l output -d "Output CSV file" -r -a "(__fish_complete_suffix .csv)"
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -s n -l samples -d "Number of poses" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -s p -l points -d "Monte-Carlo points per pose" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -l gen-coeff -d "Generation ball coefficient" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -l seed -d "Random seed" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -s w -l workers -d "Parallel workers" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from generate" -l histogram -d "Histogram image" -r
complete -c cylinter -n "__fish_seen_subcommand_from generate config" -a "(__fish_complete_suffix .yaml)" -d "YAML config"

# dataset commands
complete -c cylinter -f -n "__fish_seen_subcommand_from train validate verify estimate" -s k -l neighbors -d "Neighbours of the surrogate" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from train" -l test-size -d "Held out fraction" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from train" -l parity -d "Parity plot image" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from validate" -l folds -d "Number of folds" -r
complete -c cylinter -n "__fish_seen_subcommand_from train validate inspect" -a "(__fish_complete_suffix .csv)" -d "Dataset"

# verify command options
complete -c cylinter -f -n "__fish_seen_subcommand_from verify estimate" -l data -d "Dataset CSV" -r -a "(__fish_complete_suffix .csv)"
complete -c cylinter -f -n "__fish_seen_subcommand_from verify" -l repeat -d "Calls per timing measurement" -r
complete -c cylinter -n "__fish_seen_subcommand_from verify" -a "(__fish_complete_suffix .yaml)" -d "Scene file"

# demo command options
complete -c cylinter -f -n "__fish_seen_subcommand_from demo" -l plot -d "Scatter plot image" -r
complete -c cylinter -f -n "__fish_seen_subcommand_from demo" -l plane -d "Projection plane" -r -a "xy xz yz"

# completion command options
complete -c cylinter -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c cylinter -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c cylinter -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"
`

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for cylinter.

Examples:
  # Bash
  cylinter completion bash > ~/.local/share/bash-completion/completions/cylinter

  # Zsh
  cylinter completion zsh > ~/.zsh/completion/_cylinter
  # or add to .zshrc:
  autoload -U compinit && compinit

  # Fish
  cylinter completion fish > ~/.config/fish/completions/cylinter.fish
`
}
