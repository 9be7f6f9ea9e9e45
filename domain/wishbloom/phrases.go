package wishbloom

// DefaultCelebrationPhrases is substituted when a creation payload carries
// no phrases of its own.
var DefaultCelebrationPhrases = []string{
	"Happy Birthday!",
	"Make a wish!",
	"Another year more wonderful",
	"Cheers to you!",
	"Let the celebration begin",
	"You deserve all the cake",
	"Shine bright today",
	"Older, bolder, better",
	"Here's to your best year yet",
	"Celebrate big!",
	"The world is lucky to have you",
}
