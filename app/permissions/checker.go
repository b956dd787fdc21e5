package permissions

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// ErrActorUnresolved marks a retrieval failure, not a permission gap. It is
// returned when the member or its guild cannot be inspected at all.
var ErrActorUnresolved = errors.New("permissions: actor cannot be resolved")

// Missing evaluates every catalog entry at its declared scope and returns the
// ordered subsequence the member lacks, preserving catalog order.
func Missing(member *discordgo.Member, guild *discordgo.Guild, channel *discordgo.Channel, catalog []Requirement) ([]Requirement, error) {
	if member == nil || member.User == nil || guild == nil {
		return nil, ErrActorUnresolved
	}

	guildPerms := guildPermissions(member, guild)
	var channelPerms int64
	if channel != nil {
		channelPerms = channelPermissions(member, guild, channel, guildPerms)
	}

	var missing []Requirement
	for _, req := range catalog {
		var ok bool
		switch req.Scope {
		case ScopeGuild:
			ok = evaluateGuildScope(req.Bit, guildPerms)
		case ScopeChannel:
			// Without a channel there is nothing to grant the capability,
			// so it counts as missing rather than silently passing.
			ok = channel != nil && evaluateChannelScope(req.Bit, channelPerms)
		}
		if !ok {
			missing = append(missing, req)
		}
	}
	return missing, nil
}

// CanView reports whether the member can see the channel after overwrites.
func CanView(member *discordgo.Member, guild *discordgo.Guild, channel *discordgo.Channel) (bool, error) {
	if member == nil || member.User == nil || guild == nil || channel == nil {
		return false, ErrActorUnresolved
	}
	guildPerms := guildPermissions(member, guild)
	perms := channelPermissions(member, guild, channel, guildPerms)
	return perms&discordgo.PermissionViewChannel != 0, nil
}

// evaluateGuildScope checks a capability against server-wide grants only;
// channel overwrites never apply here.
func evaluateGuildScope(bit, guildPerms int64) bool {
	return guildPerms&bit == bit
}

// evaluateChannelScope checks a capability against the effective channel
// permissions, so a channel overwrite can revoke a guild-wide grant.
func evaluateChannelScope(bit, channelPerms int64) bool {
	return channelPerms&bit == bit
}

// guildPermissions returns the union of the member's role permissions. The
// guild owner and members with the Administrator bit hold everything.
func guildPermissions(member *discordgo.Member, guild *discordgo.Guild) int64 {
	if guild.OwnerID != "" && member.User != nil && guild.OwnerID == member.User.ID {
		return discordgo.PermissionAll
	}

	var perms int64
	for _, role := range guild.Roles {
		if role.ID == guild.ID {
			// @everyone applies to every member.
			perms |= role.Permissions
			continue
		}
		for _, memberRoleID := range member.Roles {
			if role.ID == memberRoleID {
				perms |= role.Permissions
				break
			}
		}
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}

// channelPermissions applies the channel's permission overwrites on top of
// the server-wide grants, in Discord's documented order: @everyone
// overwrite, then role overwrites, then the member overwrite.
func channelPermissions(member *discordgo.Member, guild *discordgo.Guild, channel *discordgo.Channel, guildPerms int64) int64 {
	if guildPerms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}

	perms := guildPerms

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole && overwrite.ID == guild.ID {
			perms &^= overwrite.Deny
			perms |= overwrite.Allow
			break
		}
	}

	var roleAllow, roleDeny int64
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type != discordgo.PermissionOverwriteTypeRole || overwrite.ID == guild.ID {
			continue
		}
		for _, memberRoleID := range member.Roles {
			if overwrite.ID == memberRoleID {
				roleAllow |= overwrite.Allow
				roleDeny |= overwrite.Deny
				break
			}
		}
	}
	perms &^= roleDeny
	perms |= roleAllow

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeMember && overwrite.ID == member.User.ID {
			perms &^= overwrite.Deny
			perms |= overwrite.Allow
			break
		}
	}

	return perms
}
