package model

var sampleQuestions = []string{
	"Who is the main character in Naruto?",
	"What is the plot of Attack on Titan?",
	"Compare the animation styles of Studio Ghibli and Kyoto Animation",
	"Explain why One Piece has been so successful",
	"What are the major themes in Violet Evergarden?",
}

// SampleQuestions returns example questions that exercise the built-in corpus.
func SampleQuestions() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}
