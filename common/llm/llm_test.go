package llm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathwise.app/mentor/common/llm"
)

var _ = Describe("New", func() {
	It("fails without an API key", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI})
		Expect(err).To(HaveOccurred())
		Expect(client).To(BeNil())
	})

	It("fails on an unknown provider", func() {
		client, err := llm.New(llm.Config{Provider: "gemini", APIKey: "key"})
		Expect(err).To(HaveOccurred())
		Expect(client).To(BeNil())
	})

	It("defaults to OpenAI when no provider is set", func() {
		client, err := llm.New(llm.Config{APIKey: "key"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-4o-mini"))
	})

	It("builds an Anthropic client with a default model", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "key"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("claude-sonnet-4-5-20250514"))
	})

	It("respects a configured model name", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "key", Model: "gpt-5.1"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-5.1"))
	})
})

var _ = Describe("GenerateSchema", func() {
	type verdict struct {
		Valid    bool   `json:"valid"`
		Deadline string `json:"deadline"`
	}

	It("produces a non-nil schema for a struct type", func() {
		Expect(llm.GenerateSchema[verdict]()).NotTo(BeNil())
	})
})
