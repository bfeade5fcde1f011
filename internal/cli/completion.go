package cli

import (
	"fmt"
)

// BashCompletion generates bash completion script
const BashCompletion = `#!/bin/bash
# Bash completion for shopfront CLI

_shopfront_completion() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    local commands="products product register login logout cart checkout orders order completion help"
    local cart_cmds="add remove clear"

    case "${prev}" in
        cart)
            COMPREPLY=( $(compgen -W "${cart_cmds}" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- ${cur}) )
            return 0
            ;;
        *)
            ;;
    esac

    COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
    return 0
}

complete -F _shopfront_completion shopfront
`

// ZshCompletion generates zsh completion script
const ZshCompletion = `#compdef shopfront

_shopfront() {
    local -a commands
    commands=(
        'products:List the catalog'
        'product:Show a product, optionally add it to the cart'
        'register:Create an account'
        'login:Log in and store the access token'
        'logout:Log out'
        'cart:Show or mutate the cart'
        'checkout:Place an order from the cart'
        'orders:List order history'
        'order:Show one order'
        'completion:Generate shell completion script'
        'help:Show help'
    )

    local -a cart_cmds
    cart_cmds=(
        'add:Add a product or update its quantity'
        'remove:Remove one cart line'
        'clear:Empty the cart'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
    elif [[ ${words[2]} == "cart" ]]; then
        _describe 'cart command' cart_cmds
    fi
}

_shopfront
`

func (a *App) runCompletion(args []string) error {
	shell := "bash"
	if len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(a.Out, BashCompletion)
	case "zsh":
		fmt.Fprint(a.Out, ZshCompletion)
	default:
		return fmt.Errorf("cli: unsupported shell %q (bash and zsh are supported)", shell)
	}
	return nil
}
