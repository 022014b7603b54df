// Package domain contains the core entities of the vocabulary learning
// system: flashcards, review ratings, and the candidate-word shapes
// produced by the extraction pipeline. Entities validate themselves but
// carry no persistence or transport concerns; scheduling transitions
// live in the srs subpackage and set algebra in the cardset subpackage.
package domain
