// Package huggingface implements the codec for the HuggingFace inference
// API. The API speaks the text-generation-inference protocol, so this
// adapter delegates header and body construction to the tgi package and
// only differs in the error kind it reports.
package huggingface
