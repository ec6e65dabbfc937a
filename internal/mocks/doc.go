// Package mocks holds gomock mocks for the pipeline's collaborators.
package mocks

//go:generate mockgen -destination=store.go -package=mocks careerwatch/internal/pipeline Store,Locker,Publisher
//go:generate mockgen -destination=llm.go -package=mocks careerwatch/internal/llm Completer,RateLimiter
//go:generate mockgen -destination=message_writer.go -package=mocks -source=../events/producer.go -mock_names=messageWriter=MockMessageWriter
//go:generate mockgen -destination=api.go -package=mocks -mock_names=Store=MockAPIStore careerwatch/internal/api Store,Pipeline,OnboardLimiter
