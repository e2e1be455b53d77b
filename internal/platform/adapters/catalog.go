package adapters

// Field dialects shared by families of platform APIs. Individual entries
// override where a source deviates.
var (
	snakeProfile = ProfileFields{
		Username:  "username",
		AvatarURL: "avatar_url",
		Followers: "followers_count",
		Following: "following_count",
	}
	snakePosts = PostFields{
		ID:       "id",
		Caption:  "caption",
		MediaURL: "media_url",
		Likes:    "like_count",
		Comments: "comment_count",
		PostedAt: "created_at",
	}
	camelProfile = ProfileFields{
		Username:  "handle",
		AvatarURL: "avatar",
		Followers: "followersCount",
		Following: "followsCount",
	}
	camelPosts = PostFields{
		ID:       "uri",
		Caption:  "text",
		MediaURL: "thumb",
		Likes:    "likeCount",
		Comments: "replyCount",
		PostedAt: "createdAt",
	}
	statsProfile = ProfileFields{
		Username:  "name",
		AvatarURL: "profile_image_url",
		Followers: "followers",
		Following: "following",
	}
	statsPosts = PostFields{
		ID:       "post_id",
		Caption:  "title",
		MediaURL: "thumbnail_url",
		Likes:    "likes",
		Comments: "comments",
		PostedAt: "published_at",
	}
)

func handlePlatform(name, base string, profile ProfileFields, posts PostFields) Descriptor {
	return Descriptor{
		Name:       name,
		Credential: CredentialHandle,
		ProfileURL: base + "/users/{handle}",
		PostsURL:   base + "/users/{handle}/posts",
		Profile:    profile,
		Posts:      posts,
	}
}

func tokenPlatform(name, base string, profile ProfileFields, posts PostFields) Descriptor {
	return Descriptor{
		Name:       name,
		Credential: CredentialAccessToken,
		ProfileURL: base + "/me",
		PostsURL:   base + "/me/media",
		Profile:    profile,
		Posts:      posts,
	}
}

// Catalog lists every supported platform. Each entry is a thin, mechanical
// instantiation of the shared adapter contract.
func Catalog() []Descriptor {
	return []Descriptor{
		tokenPlatform("instagram", "https://graph.instagram.com", snakeProfile, snakePosts),
		tokenPlatform("facebook", "https://graph.facebook.com/v19.0", snakeProfile, snakePosts),
		tokenPlatform("threads", "https://graph.threads.net/v1.0", snakeProfile, snakePosts),
		tokenPlatform("tiktok", "https://open.tiktokapis.com/v2", snakeProfile, snakePosts),
		tokenPlatform("youtube", "https://www.googleapis.com/youtube/v3", statsProfile, statsPosts),
		tokenPlatform("twitter", "https://api.twitter.com/2", statsProfile, statsPosts),
		tokenPlatform("twitch", "https://api.twitch.tv/helix", statsProfile, statsPosts),
		tokenPlatform("linkedin", "https://api.linkedin.com/v2", snakeProfile, snakePosts),
		tokenPlatform("pinterest", "https://api.pinterest.com/v5", snakeProfile, snakePosts),
		tokenPlatform("snapchat", "https://adsapi.snapchat.com/v1", snakeProfile, snakePosts),
		tokenPlatform("reddit", "https://oauth.reddit.com", statsProfile, statsPosts),
		tokenPlatform("discord", "https://discord.com/api/v10", statsProfile, statsPosts),
		tokenPlatform("spotify", "https://api.spotify.com/v1", statsProfile, statsPosts),
		tokenPlatform("patreon", "https://www.patreon.com/api/oauth2/v2", snakeProfile, snakePosts),
		tokenPlatform("kofi", "https://ko-fi.com/api/v1", snakeProfile, snakePosts),
		tokenPlatform("buymeacoffee", "https://developers.buymeacoffee.com/api/v1", snakeProfile, snakePosts),
		tokenPlatform("vimeo", "https://api.vimeo.com", snakeProfile, snakePosts),
		tokenPlatform("dailymotion", "https://api.dailymotion.com", snakeProfile, snakePosts),
		tokenPlatform("soundcloud", "https://api.soundcloud.com", snakeProfile, snakePosts),
		tokenPlatform("dribbble", "https://api.dribbble.com/v2", snakeProfile, snakePosts),
		tokenPlatform("behance", "https://api.behance.net/v2", snakeProfile, snakePosts),
		tokenPlatform("deviantart", "https://www.deviantart.com/api/v1/oauth2", snakeProfile, snakePosts),
		tokenPlatform("flickr", "https://api.flickr.com/services/rest", snakeProfile, snakePosts),
		tokenPlatform("tumblr", "https://api.tumblr.com/v2", snakeProfile, snakePosts),
		tokenPlatform("medium", "https://api.medium.com/v1", snakeProfile, snakePosts),
		tokenPlatform("github", "https://api.github.com", statsProfile, statsPosts),
		tokenPlatform("gitlab", "https://gitlab.com/api/v4", statsProfile, statsPosts),
		tokenPlatform("kick", "https://api.kick.com/public/v1", statsProfile, statsPosts),
		tokenPlatform("rumble", "https://rumble.com/api/v0", statsProfile, statsPosts),
		tokenPlatform("onlyfans", "https://onlyfans.com/api2/v2", snakeProfile, snakePosts),
		tokenPlatform("fansly", "https://apiv3.fansly.com/api/v1", snakeProfile, snakePosts),
		tokenPlatform("cameo", "https://api.cameo.com/v1", snakeProfile, snakePosts),
		tokenPlatform("clubhouse", "https://api.clubhouse.com/v1", snakeProfile, snakePosts),
		tokenPlatform("substack", "https://substack.com/api/v1", snakeProfile, snakePosts),
		tokenPlatform("beehiiv", "https://api.beehiiv.com/v2", snakeProfile, snakePosts),
		tokenPlatform("convertkit", "https://api.convertkit.com/v3", snakeProfile, snakePosts),
		handlePlatform("mastodon", "https://mastodon.social/api/v1", camelProfile, camelPosts),
		handlePlatform("bluesky", "https://public.api.bsky.app/xrpc", camelProfile, camelPosts),
		handlePlatform("pixelfed", "https://pixelfed.social/api/v1", camelProfile, camelPosts),
		handlePlatform("lemmy", "https://lemmy.world/api/v3", snakeProfile, snakePosts),
		handlePlatform("peertube", "https://framatube.org/api/v1", snakeProfile, snakePosts),
		handlePlatform("letterboxd", "https://api.letterboxd.com/api/v0", snakeProfile, snakePosts),
		handlePlatform("goodreads", "https://www.goodreads.com/api", snakeProfile, snakePosts),
		handlePlatform("bandcamp", "https://bandcamp.com/api", snakeProfile, snakePosts),
		handlePlatform("itchio", "https://itch.io/api/1", snakeProfile, snakePosts),
	}
}
