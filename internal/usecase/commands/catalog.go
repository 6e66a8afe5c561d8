package commands

import "esbBot/internal/domain"

type CommandDescriptor struct {
	Name        string            `json:"name"`
	Aliases     []string          `json:"aliases,omitempty"`
	Platforms   []domain.Platform `json:"platforms,omitempty"`
	Description string            `json:"description"`
	Usage       string            `json:"usage"`
	AdminOnly   bool              `json:"admin_only"`
}

// BuiltinCommandCatalog describes the commands shipped with the bot.
func BuiltinCommandCatalog() []CommandDescriptor {
	return []CommandDescriptor{
		{
			Name:        "esb",
			Aliases:     []string{"tiamp"},
			Description: "Consulte une imputation ou un salarié dans l'annuaire TIAMP.",
			Usage:       "!esb <p|project|imputation|e|employee|salarie|salarié> <identifiant>",
		},
		{
			Name:        "esbconfig",
			Description: "Affiche ou modifie la configuration de la commande esb.",
			Usage:       "!esbconfig | !esbconfig CLE=valeur [CLE=valeur...] | !esbconfig reset",
			AdminOnly:   true,
		},
		{
			Name:        "ping",
			Description: "Répond « pong » pour vérifier que le bot est en ligne.",
			Usage:       "!ping",
		},
	}
}
