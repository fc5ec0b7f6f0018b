// Package segment provides reading decomposition for language-specific
// lookups: splitting field text into its base (logographic) form and its
// phonetic reading. Decomposition is delegated to a collaborator; a
// ruby-notation splitter handles text that already carries readings and an
// OpenAI-backed segmenter handles text that does not.
package segment
