// package tone synthesizes and plays the completion tone.
//
// The tone is a sine wave whose gain falls exponentially, rendered as a mono 16-bit
// PCM WAV in memory and handed to a [Player]. [Chime] wraps a player so that ringing
// never blocks the countdown.
package tone
