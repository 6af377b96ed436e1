// Package ytdlp wraps the yt-dlp command-line tool for playlist audio
// downloads. Deposited files follow the "NN - Title.ext" naming convention
// consumed by the duplicate scanner's title normalizer.
package ytdlp
