// Package permissions defines the catalog of capabilities the bot needs to
// run a guild's rank system, and evaluates which of them a member is missing.
package permissions

import (
	"github.com/bwmarrin/discordgo"
)

// Scope says where a requirement is evaluated: against the member's
// server-wide grants, or against the effective permissions of one channel
// after overwrites.
type Scope string

const (
	ScopeGuild   Scope = "guild"
	ScopeChannel Scope = "channel"
)

// Requirement is one capability the bot needs. Name is unique across the
// catalog; catalog order is the reporting order.
type Requirement struct {
	Name        string
	Bit         int64
	Scope       Scope
	Description string
	Details     string
}

var catalog = []Requirement{
	{
		Name:        "ManageRoles",
		Bit:         discordgo.PermissionManageRoles,
		Scope:       ScopeGuild,
		Description: "Gestionar roles",
		Details:     "Necesario para crear y asignar los roles de rango de Apex.",
	},
	{
		Name:        "ManageChannels",
		Bit:         discordgo.PermissionManageChannels,
		Scope:       ScopeGuild,
		Description: "Gestionar canales",
		Details:     "Necesario para crear los canales de administración y del panel.",
	},
	{
		Name:        "ViewChannel",
		Bit:         discordgo.PermissionViewChannel,
		Scope:       ScopeChannel,
		Description: "Ver canal",
		Details:     "El bot debe poder ver los canales donde opera.",
	},
	{
		Name:        "SendMessages",
		Bit:         discordgo.PermissionSendMessages,
		Scope:       ScopeChannel,
		Description: "Enviar mensajes",
		Details:     "Necesario para publicar el panel de rangos y los embeds de estado.",
	},
	{
		Name:        "EmbedLinks",
		Bit:         discordgo.PermissionEmbedLinks,
		Scope:       ScopeChannel,
		Description: "Insertar enlaces",
		Details:     "Los mensajes de estado y del panel usan embeds.",
	},
	{
		Name:        "AttachFiles",
		Bit:         discordgo.PermissionAttachFiles,
		Scope:       ScopeChannel,
		Description: "Adjuntar archivos",
		Details:     "Necesario para adjuntar las imágenes de insignia de rango.",
	},
	{
		Name:        "ReadMessageHistory",
		Bit:         discordgo.PermissionReadMessageHistory,
		Scope:       ScopeChannel,
		Description: "Leer el historial de mensajes",
		Details:     "Necesario para actualizar mensajes publicados anteriormente.",
	},
	{
		Name:        "ManageMessages",
		Bit:         discordgo.PermissionManageMessages,
		Scope:       ScopeChannel,
		Description: "Gestionar mensajes",
		Details:     "Necesario para fijar y limpiar los mensajes del panel.",
	},
	{
		Name:        "AddReactions",
		Bit:         discordgo.PermissionAddReactions,
		Scope:       ScopeChannel,
		Description: "Añadir reacciones",
		Details:     "Usado por los mensajes informativos del bot.",
	},
}

// Catalog returns the required-capability table. Defined once at process
// start and shared read-only by all checks.
func Catalog() []Requirement {
	return catalog
}
