package kind

import "strconv"

// T is the event kind, an integer category of the event.
type T int

const (
	// ProfileMetadata stores user profile data.
	ProfileMetadata T = 0
	// TextNote is a standard short text note of plain text.
	TextNote T = 1
	// FollowList is a list of pubkeys the author follows.
	FollowList T = 3
	// Deletion is a request from an author to retract events it published
	// earlier, referenced by "e" and "a" tags (NIP-09).
	Deletion T = 5
	// Repost is a repost of a text note.
	Repost T = 6
	// Reaction is a reaction to another event.
	Reaction T = 7
)

var names = map[T]string{
	ProfileMetadata: "ProfileMetadata",
	TextNote:        "TextNote",
	FollowList:      "FollowList",
	Deletion:        "Deletion",
	Repost:          "Repost",
	Reaction:        "Reaction",
}

// String returns the name of the kind, or its number when it has no name.
func (k T) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return strconv.Itoa(int(k))
}

// IsDeletion reports whether events of this kind are deletion requests.
func (k T) IsDeletion() bool { return k == Deletion }
