// Package task implements background task processing: a persistent task
// queue, a worker pool, crash recovery, and the article generation task that
// expands saved research briefs into full articles.
package task
